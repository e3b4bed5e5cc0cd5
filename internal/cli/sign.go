package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/awis/pkg/errors"
	"github.com/matzehuels/awis/pkg/integrations/awis"
)

// signCommand creates the sign command, which prints a signed request URL
// without sending it.
func (c *CLI) signCommand() *cobra.Command {
	var (
		groups string
		at     string
		detail bool
	)

	cmd := &cobra.Command{
		Use:   "sign <host>",
		Short: "Print the signed request URL for a host",
		Long: `Print the signed UrlInfo request URL for a host without sending it.

The URL is valid for a limited time after its timestamp. Use --at to sign
with a fixed timestamp and get reproducible output.`,
		Example: `  awis sign github.com --groups Rank
  curl "$(awis sign github.com)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gs, err := awis.ParseResponseGroups(groups)
			if err != nil {
				return err
			}

			var opts []awis.Option
			if at != "" {
				ts, err := time.Parse(time.RFC3339Nano, at)
				if err != nil {
					return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid --at timestamp")
				}
				opts = append(opts, awis.WithClock(func() time.Time { return ts }))
			}

			client, err := c.newClient(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			req, err := client.Sign(awis.Params{Host: args[0], ResponseGroups: gs})
			if err != nil {
				return err
			}

			if detail {
				w := cmd.ErrOrStderr()
				printInfo(w, "Canonical query")
				printDetail(w, "%s", req.CanonicalQuery)
				printInfo(w, "String to sign")
				printDetail(w, "%q", req.StringToSign)
			}
			fmt.Fprintln(cmd.OutOrStdout(), req.URL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&groups, "groups", "g", "", "comma-separated response groups (default: all)")
	cmd.Flags().StringVar(&at, "at", "", "sign at this RFC 3339 timestamp instead of now")
	cmd.Flags().BoolVar(&detail, "detail", false, "also print the canonical query and string to sign on stderr")
	cmd.RegisterFlagCompletionFunc("groups", completeGroups)

	return cmd
}

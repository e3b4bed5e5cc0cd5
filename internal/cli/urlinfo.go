package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/awis/pkg/errors"
	"github.com/matzehuels/awis/pkg/integrations/awis"
)

// urlInfoCommand creates the urlinfo command for looking up a host.
func (c *CLI) urlInfoCommand() *cobra.Command {
	var (
		groups string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "urlinfo <host>",
		Short: "Fetch traffic and content information about a host",
		Long: `Fetch traffic rank, inbound links, usage statistics and related sites for a host.

Without --groups every response group is requested. Fields outside the
requested groups are left out of the output.`,
		Example: `  awis urlinfo github.com
  awis urlinfo github.com --groups Rank,LinksInCount,SiteData
  awis urlinfo github.com --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			host := args[0]

			gs, err := awis.ParseResponseGroups(groups)
			if err != nil {
				return err
			}
			client, err := c.newClient(ctx)
			if err != nil {
				if errs.Is(err, errs.ErrCodeMissingCredentials) {
					printNextStep(cmd.ErrOrStderr(), "Set credentials", "export "+envAccessKeyID+"=... "+envSecretAccessKey+"=...")
				}
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			var spin *spinner
			if !asJSON {
				spin = newSpinner(ctx, cmd.ErrOrStderr(), "Fetching "+host)
				spin.Start()
			}
			info, err := client.FetchURLInfo(ctx, host, gs...)
			if spin != nil {
				if err != nil && !spin.Cancelled() {
					spin.StopWithError(errs.UserMessage(err))
				} else {
					spin.Stop()
				}
			}
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %s", host))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			printURLInfo(out, host, info)
			return nil
		},
	}

	cmd.Flags().StringVarP(&groups, "groups", "g", "", "comma-separated response groups (default: all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.RegisterFlagCompletionFunc("groups", completeGroups)

	return cmd
}

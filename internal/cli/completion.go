package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/awis/pkg/integrations/awis"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for awis.

To load completions:

Bash:
  $ source <(awis completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ awis completion bash > /etc/bash_completion.d/awis
  # macOS:
  $ awis completion bash > $(brew --prefix)/etc/bash_completion.d/awis

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ awis completion zsh > "${fpath[1]}/_awis"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ awis completion fish | source

  # To load completions for each session, execute once:
  $ awis completion fish > ~/.config/fish/completions/awis.fish

PowerShell:
  PS> awis completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> awis completion powershell > awis.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completeGroups completes the comma-separated --groups flag, offering the
// response groups not yet listed.
func completeGroups(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	used := make(map[string]bool)
	for _, g := range strings.Split(prefix, ",") {
		used[strings.TrimSpace(g)] = true
	}

	var names []string
	for _, g := range awis.DefaultResponseGroups() {
		if !used[string(g)] {
			names = append(names, prefix+string(g))
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

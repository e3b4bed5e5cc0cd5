// Package cli implements the awis command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/awis/pkg/buildinfo"
	"github.com/matzehuels/awis/pkg/integrations/awis"
	"github.com/matzehuels/awis/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "awis"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	getenv     func(string) string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		getenv: os.Getenv,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "awis queries the Alexa Web Information Service",
		Long:         `awis looks up traffic rank, inbound links, usage statistics and related sites for a host through the AWIS UrlInfo API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := newLogHooks(c.Logger)
			observability.SetHTTPHooks(hooks)
			observability.SetFetchHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/awis/config.toml)")

	// Register all subcommands
	root.AddCommand(c.urlInfoCommand())
	root.AddCommand(c.signCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// loadConfig reads the config file named by --config, or the default one.
func (c *CLI) loadConfig() (*Config, error) {
	if c.configPath != "" {
		return loadConfig(c.configPath, true, c.getenv)
	}
	path, err := configPath()
	if err != nil {
		// No home directory: environment variables only.
		return loadConfig("", false, c.getenv)
	}
	return loadConfig(path, false, c.getenv)
}

// newClient builds an API client from config and environment. Options in
// extra are applied last.
func (c *CLI) newClient(ctx context.Context, extra ...awis.Option) (*awis.Client, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.options(loggerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return awis.NewClient(cfg.credentials(), append(opts, extra...)...)
}

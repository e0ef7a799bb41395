package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/arbaizam/fredclient/internal/cmd/output"
	"github.com/arbaizam/fredclient/pkg/logging"
)

// Execute runs the fred CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fred",
		Short:   "Federal Reserve Economic Data (FRED) CLI",
		Version: a.version,
		Long: `fred calls the Federal Reserve Economic Data (FRED) REST API.

Every FRED operation is an entry in an endpoint registry. List them with
"fred list", inspect one with "fred describe", and run it with "fred call".
"fred serve" exposes the same registry as a read-only HTTP gateway.

The API key is read from --api-key, FRED_API_KEY, a .env file, or the
api_key entry of ~/.fred.yaml.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "server",
		Title: "Server Commands:",
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.ConfigFile, "config", "", "config file (default is $HOME/.fred.yaml)")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	pf.StringVarP(&a.flags.Format, "format", "o", "", "output format: table, json, yaml, wide")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.StringVar(&a.flags.APIKey, "api-key", "", "FRED API key (default $FRED_API_KEY)")
	pf.StringVar(&a.flags.BaseURL, "base-url", "", "FRED API root URL (default $FRED_BASE_URL or the public API)")
	pf.StringVar(&a.flags.Timeout, "timeout", "", "per-request timeout, e.g. 30s (default $FRED_TIMEOUT or 30s)")
	pf.StringVar(&a.flags.Endpoints, "endpoints", "", "YAML endpoint registry replacing the built-in table (default $FRED_ENDPOINTS)")

	rootCmd.SetVersionTemplate("fred {{.Version}}\n")
	if a.out != nil {
		rootCmd.SetOut(a.out)
	}

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if a.flags.ConfigFile != "" {
		if err := a.config.ReadConfigFile(a.flags.ConfigFile); err != nil {
			return err
		}
	}

	a.config.UpdateFromFlags(a.flags)

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	a.logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("config_file", a.config.ConfigFile).
		Msg("Command setup complete")
	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

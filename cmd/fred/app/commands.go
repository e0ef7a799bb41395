package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbaizam/fredclient/cmd/fred/cmd/call"
	"github.com/arbaizam/fredclient/cmd/fred/cmd/describe"
	"github.com/arbaizam/fredclient/cmd/fred/cmd/list"
	"github.com/arbaizam/fredclient/cmd/fred/cmd/serve"
	"github.com/arbaizam/fredclient/internal/cmd/output"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(describe.NewCommand(a))
	rootCmd.AddCommand(call.NewCommand(a))

	// Server commands
	rootCmd.AddCommand(serve.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// VersionInfo is the structured form of "fred version".
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	BuiltBy string `json:"built_by" yaml:"built_by"`
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := VersionInfo{
				Version: a.version,
				Commit:  a.commit,
				Date:    a.date,
				BuiltBy: a.builtBy,
			}

			format := output.Format(a.OutputFormat())
			if format.IsTable() {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "fred %s\n", info.Version)
				fmt.Fprintf(w, "  commit:   %s\n", info.Commit)
				fmt.Fprintf(w, "  built:    %s\n", info.Date)
				fmt.Fprintf(w, "  built by: %s\n", info.BuiltBy)
				return nil
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), info)
		},
	}
}

// Package describe implements "fred describe".
package describe

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbaizam/fredclient/internal/cmd/output"
	"github.com/arbaizam/fredclient/pkg/endpoints"
)

// AppContext defines what the describe command needs from the app.
type AppContext interface {
	Registry() (*endpoints.Registry, error)
	OutputFormat() string
}

// Detail is the structured form of a described operation.
type Detail struct {
	endpoints.EndpointSpec `yaml:",inline"`
	Describe               string `json:"describe" yaml:"describe"`
}

// NewCommand creates the describe command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "describe <operation>",
		GroupID: "core",
		Short:   "Show the description and parameters of an operation",
		Example: `  fred describe series_observations
  fred describe category -o wide    # Parameter table
  fred describe series -o json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: CompleteOperations(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}
			spec, err := reg.Lookup(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format := output.DetectFormat(app.OutputFormat()); format {
			case output.FormatTable:
				_, err = fmt.Fprintln(w, endpoints.Describe(spec))
				return err
			case output.FormatWide:
				if _, err := fmt.Fprintf(w, "%s: %s\nPath: %s\n\n", spec.Name, spec.Description, spec.Path); err != nil {
					return err
				}
				return output.NewFormatter(format).Format(w, output.ParamsTable(spec))
			default:
				return output.NewFormatter(format).Format(w, Detail{EndpointSpec: spec, Describe: endpoints.Describe(spec)})
			}
		},
	}
}

// CompleteOperations offers registry operation names for shell completion.
func CompleteOperations(app AppContext) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		reg, err := app.Registry()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return reg.Operations(), cobra.ShellCompDirectiveNoFileComp
	}
}

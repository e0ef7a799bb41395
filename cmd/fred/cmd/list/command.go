// Package list implements "fred list".
package list

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arbaizam/fredclient/internal/cmd/output"
	"github.com/arbaizam/fredclient/internal/matcher"
	"github.com/arbaizam/fredclient/pkg/endpoints"
)

// AppContext defines what the list command needs from the app.
type AppContext interface {
	Registry() (*endpoints.Registry, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list [filter]",
		GroupID: "core",
		Short:   "List the FRED operations in the registry",
		Long: `List shows every operation in the endpoint registry with its required
parameters. An optional filter keeps matching operations: a plain word
matches as a substring, "*" "?" and "[...]" make it a glob, and regex
metacharacters make it a regular expression. Matching ignores case. Use -o wide to include paths and optional parameters.`,
		Example: `  fred list                 # All operations
  fred list series          # Operations with "series" in the name
  fred list 'category_*'    # Glob over operation names
  fred list '^release'      # Regular expression
  fred list -o wide         # Include paths and optional parameters
  fred list -o yaml         # Registry entries as YAML`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}

			specs := reg.Specs()
			if len(args) == 1 {
				if specs, err = filter(specs, args[0]); err != nil {
					return err
				}
			}
			app.Logger().Debug().Int("operations", len(specs)).Msg("Listing operations")

			format := output.DetectFormat(app.OutputFormat())
			var data any = specs
			if format.IsTable() {
				data = output.EndpointsTable(specs, format == output.FormatWide)
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
		},
	}
}

func filter(specs []endpoints.EndpointSpec, pattern string) ([]endpoints.EndpointSpec, error) {
	m, err := matcher.New(pattern)
	if err != nil {
		return nil, err
	}
	out := make([]endpoints.EndpointSpec, 0, len(specs))
	for _, s := range specs {
		if m.Match(s.Name) {
			out = append(out, s)
		}
	}
	return out, nil
}

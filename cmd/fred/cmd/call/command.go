// Package call implements "fred call".
package call

import (
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arbaizam/fredclient"
	"github.com/arbaizam/fredclient/cmd/fred/cmd/describe"
	"github.com/arbaizam/fredclient/internal/cmd/output"
	"github.com/arbaizam/fredclient/pkg/dispatch"
	"github.com/arbaizam/fredclient/pkg/endpoints"
	"github.com/arbaizam/fredclient/pkg/errors"
	"github.com/arbaizam/fredclient/pkg/logging"
)

// AppContext defines what the call command needs from the app.
type AppContext interface {
	Registry() (*endpoints.Registry, error)
	Client() (*fredclient.Client, error)
	OutputFormat() string
}

// NewCommand creates the call command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "call <operation> [key=value ...]",
		GroupID: "core",
		Short:   "Call a FRED operation and print the response",
		Long: `Call runs one FRED operation. Arguments are key=value pairs; values of
integer-typed parameters are parsed as integers, everything else is sent
as a string. Repeating a key joins its values with commas.

Table output renders the record list of the response (observations,
series, categories, ...); other formats print the response unchanged.`,
		Example: `  fred call series series_id=GNPCA
  fred call series_observations series_id=GDP observation_start=2020-01-01 -o table
  fred call category_children category_id=13
  fred call series_search search_text="monetary service index" limit=5 -o yaml`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeCall(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}
			spec, err := reg.Lookup(args[0])
			if err != nil {
				return err
			}

			raw, err := ParsePairs(args[1:])
			if err != nil {
				return err
			}
			callArgs, err := dispatch.Coerce(spec, raw)
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			// Each invocation gets its own id so its log lines can be grouped.
			ctx := logging.WithRequestID(cmd.Context(), uuid.NewString())
			logging.FromContext(ctx).Debug().
				Str("operation", spec.Name).
				Int("args", len(callArgs)).
				Msg("Calling FRED")
			value, err := client.Call(ctx, spec.Name, callArgs)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			var data = value
			if format.IsTable() {
				if table := output.ResultTable(value); table != nil {
					data = table
				}
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
		},
	}
}

// ParsePairs turns key=value arguments into a map. Repeated keys are
// joined with commas, the list separator FRED uses.
func ParsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.NewValidationError("argument", pair, "expected key=value")
		}
		if prev, seen := out[key]; seen {
			value = prev + "," + value
		}
		out[key] = value
	}
	return out, nil
}

// completeCall completes the operation name, then "param=" for its
// declared parameters.
func completeCall(app AppContext) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	operations := describe.CompleteOperations(app)
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return operations(cmd, args, toComplete)
		}
		reg, err := app.Registry()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		spec, err := reg.Lookup(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var out []string
		for _, p := range append(spec.Required, spec.Optional...) {
			out = append(out, p.Name+"=")
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}

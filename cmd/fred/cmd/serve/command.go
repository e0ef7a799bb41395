// Package serve implements "fred serve", the read-only HTTP gateway.
package serve

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arbaizam/fredclient"
	"github.com/arbaizam/fredclient/internal/server"
)

// AppContext defines what the serve command needs from the app.
type AppContext interface {
	Client() (*fredclient.Client, error)
	Logger() *zerolog.Logger
}

type options struct {
	addr        string
	prefix      string
	cors        bool
	corsOrigins []string
	token       string
}

// NewCommand creates the serve command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "server",
		Short:   "Serve the registry and FRED calls over HTTP",
		Long: `Serve starts a read-only HTTP gateway in front of FRED. The FRED API key
stays on the server; clients call operations by name.

Routes:
  GET /health
  GET <prefix>/operations
  GET <prefix>/operations/{name}
  GET <prefix>/call/{name}?key=value...

Set --token or FRED_GATEWAY_TOKEN to require an X-Gateway-Token header.`,
		Example: `  fred serve
  fred serve --addr 127.0.0.1:9000 --cors
  FRED_GATEWAY_TOKEN=secret fred serve --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			return server.New(client, cfg, app.Logger()).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.prefix, "prefix", server.DefaultConfig().PathPrefix, "API path prefix")
	cmd.Flags().BoolVar(&opts.cors, "cors", false, "enable CORS")
	cmd.Flags().StringSliceVar(&opts.corsOrigins, "cors-origins", nil, "allowed CORS origins (default all when --cors is set)")
	cmd.Flags().StringVar(&opts.token, "token", "", "gateway access token (default $FRED_GATEWAY_TOKEN)")

	return cmd
}

func (o *options) config() (server.Config, error) {
	cfg := server.DefaultConfig()
	if err := cfg.ParseAddr(o.addr); err != nil {
		return cfg, err
	}
	cfg.PathPrefix = o.prefix
	cfg.CORSEnabled = o.cors || len(o.corsOrigins) > 0
	cfg.CORSOrigins = o.corsOrigins
	cfg.AuthToken = o.token
	if cfg.AuthToken == "" {
		cfg.AuthToken = viper.GetString("gateway_token")
	}
	return cfg, nil
}

package serve

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbaizam/fredclient"
	"github.com/arbaizam/fredclient/internal/appcontext"
	"github.com/arbaizam/fredclient/pkg/errors"
)

func TestOptionsConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	opts := &options{addr: "127.0.0.1:9000", prefix: "/fred/v1", corsOrigins: []string{"https://example.org"}}
	cfg, err := opts.config()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/fred/v1", cfg.PathPrefix)
	assert.True(t, cfg.CORSEnabled)
	assert.Empty(t, cfg.AuthToken)

	viper.Set("gateway_token", "fromenv")
	cfg, err = (&options{addr: ":8080"}).config()
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.AuthToken)
	assert.False(t, cfg.CORSEnabled)

	cfg, err = (&options{addr: ":8080", token: "flag"}).config()
	require.NoError(t, err)
	assert.Equal(t, "flag", cfg.AuthToken)

	_, err = (&options{addr: "nonsense"}).config()
	assert.Error(t, err)
}

func TestServeNeedsClient(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{
		ClientFunc: func() (*fredclient.Client, error) { return nil, errors.ErrAPIKeyRequired },
	})
	cmd.SetArgs([]string{"--addr", "127.0.0.1:0"})
	err := cmd.Execute()
	assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)
}

package fredclient

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/arbaizam/fredclient/pkg/endpoints"
	"github.com/arbaizam/fredclient/pkg/errors"
)

// Option is a function that configures a Client
type Option func(*config) error

type config struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	registry   *endpoints.Registry
	logger     *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		registry: endpoints.Default(),
	}
}

// WithBaseURL points the client at another FRED-compatible root URL
func WithBaseURL(url string) Option {
	return func(c *config) error {
		if url == "" {
			return errors.NewValidationError("base_url", url, "cannot be empty")
		}
		c.baseURL = url
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for every request
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) error {
		c.httpClient = client
		return nil
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return errors.NewValidationError("timeout", d, "cannot be negative")
		}
		c.timeout = d
		return nil
	}
}

// WithRegistry replaces the built-in FRED endpoint table
func WithRegistry(registry *endpoints.Registry) Option {
	return func(c *config) error {
		if registry == nil {
			return errors.NewValidationError("registry", nil, "cannot be nil")
		}
		c.registry = registry
		return nil
	}
}

// WithLogger sets the logger used unless the call context carries one set
// with logging.WithLogger. Field helpers like logging.WithOperation do not
// count as setting one.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

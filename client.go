// Package fredclient is a Go client for the Federal Reserve Economic Data
// (FRED) REST API.
//
// Every FRED operation is described by an entry in an endpoint registry
// (path, typed required and optional parameters, description) and executed
// by a single generic dispatcher. Callers name the operation and pass
// arguments; the parsed JSON body comes back unchanged.
//
// Example usage:
//
//	client, err := fredclient.New(os.Getenv("FRED_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Generic call by operation name
//	data, err := client.Call(ctx, "series_observations", fredclient.Args{
//	    "series_id":         "GDP",
//	    "observation_start": "2020-01-01",
//	})
//
//	// Discover operations
//	for _, name := range client.Operations() {
//	    doc, _ := client.Describe(name)
//	    fmt.Println(doc)
//	}
package fredclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arbaizam/fredclient/pkg/dispatch"
	"github.com/arbaizam/fredclient/pkg/endpoints"
	"github.com/arbaizam/fredclient/pkg/errors"
	"github.com/arbaizam/fredclient/pkg/logging"
)

// Args are the named arguments of one call.
type Args = dispatch.Args

// Client pairs an endpoint registry with a dispatcher holding the API key.
// It is safe for concurrent use.
type Client struct {
	registry   *endpoints.Registry
	dispatcher *dispatch.Dispatcher
	logger     *zerolog.Logger
}

// New creates a Client authenticating with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	var dispatchOpts []dispatch.Option
	if cfg.baseURL != "" {
		dispatchOpts = append(dispatchOpts, dispatch.WithBaseURL(cfg.baseURL))
	}
	if cfg.httpClient != nil {
		dispatchOpts = append(dispatchOpts, dispatch.WithHTTPClient(cfg.httpClient))
	}
	if cfg.timeout > 0 {
		dispatchOpts = append(dispatchOpts, dispatch.WithTimeout(cfg.timeout))
	}

	return &Client{
		registry:   cfg.registry,
		dispatcher: dispatch.New(apiKey, dispatchOpts...),
		logger:     cfg.logger,
	}, nil
}

// Call looks up operation and invokes it with args.
// An unknown operation fails with *errors.UnknownOperationError before any
// network activity. The client's logger is used unless ctx carries one set
// with logging.WithLogger; a request id already on ctx is kept.
func (c *Client) Call(ctx context.Context, operation string, args Args) (any, error) {
	spec, err := c.registry.Lookup(operation)
	if err != nil {
		return nil, err
	}
	if c.logger != nil && !logging.HasLogger(ctx) {
		ctx = logging.WithLogger(ctx, c.logger)
		if id := logging.RequestID(ctx); id != "" {
			ctx = logging.WithRequestID(ctx, id)
		}
	}
	return c.dispatcher.Invoke(ctx, spec, args)
}

// CallObject is Call for operations documented to return a JSON object.
func (c *Client) CallObject(ctx context.Context, operation string, args Args) (map[string]any, error) {
	value, err := c.Call(ctx, operation, args)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		spec, _ := c.registry.Lookup(operation)
		body, merr := json.Marshal(value)
		if merr != nil {
			body = []byte(fmt.Sprintf("%T", value))
		}
		return nil, errors.NewMalformedResponseError(operation, spec.Path, string(body),
			fmt.Errorf("top-level JSON value is %T, not an object", value))
	}
	return obj, nil
}

// Describe returns the description and parameter listing of operation.
func (c *Client) Describe(operation string) (string, error) {
	return c.registry.Describe(operation)
}

// Operations returns all operation names in registry order.
func (c *Client) Operations() []string {
	return c.registry.Operations()
}

// Endpoints returns the specs of all operations in registry order.
func (c *Client) Endpoints() []endpoints.EndpointSpec {
	return c.registry.Specs()
}

// Registry returns the registry the client dispatches against.
func (c *Client) Registry() *endpoints.Registry {
	return c.registry
}

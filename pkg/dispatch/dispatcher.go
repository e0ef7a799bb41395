// Package dispatch executes one FRED call for an endpoint spec: it validates
// caller arguments against the declared parameter types, injects the fixed
// api_key and file_type parameters, issues a single GET and returns the
// decoded JSON value unchanged.
//
// A Dispatcher holds no mutable state and is safe for concurrent use.
package dispatch

import (
	"context"
	"net/http"
	"time"

	"github.com/arbaizam/fredclient/internal/transport"
	"github.com/arbaizam/fredclient/pkg/constants"
	"github.com/arbaizam/fredclient/pkg/endpoints"
	"github.com/arbaizam/fredclient/pkg/logging"
)

// Args are the caller-supplied named arguments of one call. A nil value
// counts as absent.
type Args map[string]any

// Dispatcher validates and executes calls against the FRED API.
type Dispatcher struct {
	baseURL   string
	transport *transport.Client
}

// Option configures a Dispatcher.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// WithBaseURL overrides constants.DefaultBaseURL.
func WithBaseURL(url string) Option {
	return func(o *options) {
		if url != "" {
			o.baseURL = url
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
// It has no effect when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// New returns a Dispatcher that authenticates with apiKey.
func New(apiKey string, opts ...Option) *Dispatcher {
	o := &options{
		baseURL: constants.DefaultBaseURL,
		timeout: constants.DefaultHTTPTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Dispatcher{
		baseURL:   o.baseURL,
		transport: transport.NewForFRED(httpClient, apiKey),
	}
}

// BaseURL returns the URL endpoint paths are appended to.
func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

// Invoke validates args against spec and performs the call.
//
// Errors, in the order they are checked:
//   - *errors.MissingParameterError for an absent or nil required parameter
//   - *errors.InvalidParameterTypeError for a declared parameter of the wrong type
//   - *errors.TransportError when the request cannot be completed
//   - *errors.HTTPStatusError for a 4xx or 5xx answer
//   - *errors.MalformedResponseError when the body is not JSON
func (d *Dispatcher) Invoke(ctx context.Context, spec endpoints.EndpointSpec, args Args) (any, error) {
	merged := prepare(args)
	if err := Validate(spec, merged); err != nil {
		return nil, err
	}

	ctx = logging.WithOperation(ctx, spec.Name)
	logging.FromContext(ctx).Debug().
		Str("path", spec.Path).
		Strs("params", sortedKeys(merged)).
		Msg("dispatching FRED call")

	resp, err := d.transport.Get(ctx, spec.Name, transport.BuildURL(d.baseURL, spec.Path), Encode(merged))
	if err != nil {
		return nil, err
	}
	return transport.DecodeResponse(resp, spec.Name, spec.Path)
}

// prepare copies args, drops nils and sets the default file_type. Any
// caller-supplied api_key is dropped; the transport always sends the
// dispatcher's own key.
func prepare(args Args) Args {
	merged := make(Args, len(args)+1)
	for k, v := range args {
		if isNil(v) || k == constants.APIKeyParam {
			continue
		}
		merged[k] = v
	}
	if _, ok := merged[constants.FileTypeParam]; !ok {
		merged[constants.FileTypeParam] = constants.DefaultFileType
	}
	return merged
}

// Package transport performs the single HTTP GET behind every FRED call:
// it applies the API key, sets JSON headers, and turns transport failures,
// error statuses and non-JSON bodies into typed errors.
package transport

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/arbaizam/fredclient/pkg/constants"
	"github.com/arbaizam/fredclient/pkg/errors"
	"github.com/arbaizam/fredclient/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http   *http.Client
	auth   Authenticator
	apiKey string
}

// New creates a transport client. A nil httpClient gets DefaultHTTPTimeout;
// a nil auth sends no credential.
func New(httpClient *http.Client, auth Authenticator, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if auth == nil {
		auth = &NoAuth{}
	}
	return &Client{http: httpClient, auth: auth, apiKey: apiKey}
}

// NewForFRED creates a client that sends apiKey as the api_key query parameter.
func NewForFRED(httpClient *http.Client, apiKey string) *Client {
	return New(httpClient, &QueryAuth{Param: constants.APIKeyParam}, apiKey)
}

// Get issues a GET to rawURL with query merged into its query string.
// Failures of the HTTP layer come back as *errors.TransportError with the
// API key redacted; the response is returned as-is whatever its status.
func (c *Client) Get(ctx context.Context, operation, rawURL string, query url.Values) (*http.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.NewTransportError(operation, rawURL, err)
	}
	if len(query) > 0 {
		merged := u.Query()
		for k, vs := range query {
			merged[k] = append([]string(nil), vs...)
		}
		u.RawQuery = merged.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.NewTransportError(operation, u.Path, err)
	}
	c.auth.Apply(req, c.apiKey)
	req.Header.Set("Accept", "application/json")

	logger := logging.FromContext(ctx)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewTransportError(operation, u.Path, redactError(err))
	}
	logger.Debug().
		Str("url", Redact(req.URL.String())).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("FRED request completed")
	return resp, nil
}

// redactError strips credentials from the URL embedded in *url.Error.
func redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: Redact(urlErr.URL), Err: urlErr.Err}
	}
	return err
}

// Redact replaces the api_key query value in rawURL.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := u.Query()
	if !query.Has(constants.APIKeyParam) {
		return rawURL
	}
	query.Set(constants.APIKeyParam, "REDACTED")
	u.RawQuery = query.Encode()
	return u.String()
}

package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/arbaizam/fredclient/pkg/constants"
	"github.com/arbaizam/fredclient/pkg/errors"
	"github.com/arbaizam/fredclient/pkg/logging"
)

// BuildURL joins a base URL and an endpoint path with exactly one slash.
func BuildURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// DecodeResponse reads resp and returns the parsed JSON value.
// A 4xx or 5xx status yields *errors.HTTPStatusError without looking at the
// body as JSON; an unparsable body yields *errors.MalformedResponseError
// carrying the raw text.
func DecodeResponse(resp *http.Response, operation, endpoint string) (any, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("endpoint", endpoint).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError(operation, endpoint, errors.WrapIO("read", "response body", err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errors.NewHTTPStatusError(operation, endpoint, resp.StatusCode, truncate(string(body)))
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, errors.NewMalformedResponseError(operation, endpoint, string(body), err)
	}
	return value, nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= constants.MaxErrorBodySize {
		return s
	}
	return s[:constants.MaxErrorBodySize] + "..."
}

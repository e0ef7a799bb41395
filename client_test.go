package fredclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbaizam/fredclient"
	"github.com/arbaizam/fredclient/pkg/endpoints"
	"github.com/arbaizam/fredclient/pkg/errors"
	"github.com/arbaizam/fredclient/pkg/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...fredclient.Option) *fredclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]fredclient.Option{
		fredclient.WithBaseURL(srv.URL + "/fred"),
		fredclient.WithHTTPClient(srv.Client()),
	}, opts...)

	client, err := fredclient.New("K", opts...)
	require.NoError(t, err)
	return client
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := fredclient.New("")
	assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)
	assert.True(t, errors.IsAPIKeyError(err))
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := fredclient.New("K", fredclient.WithBaseURL(""))
	assert.True(t, errors.IsValidationError(err))

	_, err = fredclient.New("K", fredclient.WithTimeout(-time.Second))
	assert.True(t, errors.IsValidationError(err))

	_, err = fredclient.New("K", fredclient.WithRegistry(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestCall(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"seriess":[{"id":"GNPCA"}]}`)
	})

	value, err := client.Call(context.Background(), "series", fredclient.Args{"series_id": "GNPCA"})
	require.NoError(t, err)

	assert.Equal(t, "/fred/series", gotPath)
	assert.Contains(t, gotQuery, "series_id=GNPCA")
	assert.Contains(t, gotQuery, "api_key=K")
	assert.Contains(t, gotQuery, "file_type=json")

	obj, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, obj, "seriess")
}

func TestCallUnknownOperationMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `{}`)
	})

	_, err := client.Call(context.Background(), "get_series", fredclient.Args{"series_id": "GDP"})
	assert.True(t, errors.IsNotFound(err))

	_, err = client.Describe("get_series")
	assert.True(t, errors.IsNotFound(err))

	assert.Zero(t, hits.Load())
}

func TestCallMissingAndInvalid(t *testing.T) {
	client := newTestClient(t, jsonHandler(`{}`))

	_, err := client.Call(context.Background(), "series", nil)
	var missing *errors.MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "series_id", missing.Parameter)

	_, err = client.Call(context.Background(), "series", fredclient.Args{"series_id": 123})
	var typeErr *errors.InvalidParameterTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "string", typeErr.Expected)
}

func TestCallObjectRejectsNonObject(t *testing.T) {
	client := newTestClient(t, jsonHandler(`[1,2,3]`))

	_, err := client.CallObject(context.Background(), "tags", nil)
	assert.True(t, errors.IsMalformedResponse(err))

	var malformed *errors.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "[1,2,3]", malformed.Body)
	assert.Equal(t, "tags", malformed.Endpoint)
	assert.Contains(t, malformed.Err.Error(), "[]interface {}")
}

func TestTypedShortcuts(t *testing.T) {
	var paths []string
	var queries []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		queries = append(queries, r.URL.RawQuery)
		_, _ = io.WriteString(w, `{"ok":true}`)
	})
	ctx := context.Background()

	_, err := client.Series(ctx, "GNPCA", nil)
	require.NoError(t, err)
	_, err = client.SeriesObservations(ctx, "GDP", fredclient.Args{"observation_start": "2020-01-01", "series_id": "IGNORED"})
	require.NoError(t, err)
	_, err = client.SeriesSearch(ctx, "unemployment", fredclient.Args{"limit": 5})
	require.NoError(t, err)
	_, err = client.Category(ctx, 125)
	require.NoError(t, err)
	_, err = client.CategoryChildren(ctx, 13, nil)
	require.NoError(t, err)
	_, err = client.Releases(ctx, fredclient.Args{"limit": 2})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/fred/series",
		"/fred/series/observations",
		"/fred/series/search",
		"/fred/category",
		"/fred/category/children",
		"/fred/releases",
	}, paths)
	assert.Contains(t, queries[1], "series_id=GDP")
	assert.Contains(t, queries[1], "observation_start=2020-01-01")
	assert.Contains(t, queries[2], "limit=5")
	assert.Contains(t, queries[3], "category_id=125")
	assert.Contains(t, queries[5], "limit=2")
}

func TestOperationsAndDescribe(t *testing.T) {
	client, err := fredclient.New("K")
	require.NoError(t, err)

	ops := client.Operations()
	assert.Equal(t, endpoints.Default().Operations(), ops)
	assert.Len(t, client.Endpoints(), len(ops))
	assert.Same(t, endpoints.Default(), client.Registry())

	doc, err := client.Describe("series_observations")
	require.NoError(t, err)
	assert.Contains(t, doc, "series_id")
	assert.True(t, strings.HasPrefix(doc, "series_observations: "))
}

func TestWithRegistry(t *testing.T) {
	reg := endpoints.MustNew(endpoints.EndpointSpec{
		Name:        "releases_dates",
		Path:        "releases/dates",
		Description: "Get release dates for all releases of economic data.",
	})

	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"release_dates":[]}`)
	}, fredclient.WithRegistry(reg))

	assert.Equal(t, []string{"releases_dates"}, client.Operations())

	_, err := client.Call(context.Background(), "releases_dates", nil)
	require.NoError(t, err)
	assert.Equal(t, "/fred/releases/dates", gotPath)

	_, err = client.Call(context.Background(), "series", fredclient.Args{"series_id": "GDP"})
	assert.True(t, errors.IsNotFound(err))
}

func TestWithLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	client := newTestClient(t, jsonHandler(`{}`), fredclient.WithLogger(testLogger.Logger))

	_, err := client.Call(context.Background(), "sources", nil)
	require.NoError(t, err)
	testLogger.AssertContains(t, `"operation":"sources"`)
}

func TestWithLoggerAppliesToFieldOnlyContext(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	client := newTestClient(t, jsonHandler(`{}`), fredclient.WithLogger(testLogger.Logger))

	ctx := logging.WithRequestID(logging.WithField(context.Background(), "caller", "x"), "req-1")
	_, err := client.Call(ctx, "sources", nil)
	require.NoError(t, err)
	testLogger.AssertContains(t, `"operation":"sources"`)
	testLogger.AssertContains(t, `"request_id":"req-1"`)
}

func TestExplicitContextLoggerWins(t *testing.T) {
	clientLogger := logging.NewTestLogger(t)
	ctxLogger := logging.NewTestLogger(t)
	client := newTestClient(t, jsonHandler(`{}`), fredclient.WithLogger(clientLogger.Logger))

	ctx := logging.WithOperation(logging.WithLogger(context.Background(), ctxLogger.Logger), "outer")
	_, err := client.Call(ctx, "sources", nil)
	require.NoError(t, err)
	ctxLogger.AssertContains(t, `"operation":"sources"`)
	assert.Empty(t, clientLogger.Output())
}

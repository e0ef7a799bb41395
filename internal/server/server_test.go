package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbaizam/fredclient"
	"github.com/arbaizam/fredclient/internal/server/response"
	"github.com/arbaizam/fredclient/pkg/logging"
)

// fakeFRED records the last query it saw and answers from routes.
type fakeFRED struct {
	mu        sync.Mutex
	lastPath  string
	lastQuery url.Values
	routes    map[string]func(http.ResponseWriter)
}

func (f *fakeFRED) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.lastPath = r.URL.Path
	f.lastQuery = r.URL.Query()
	f.mu.Unlock()

	if route, ok := f.routes[r.URL.Path]; ok {
		route(w)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, `{"error_code":404,"error_message":"Not Found"}`)
}

func (f *fakeFRED) last() (string, url.Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastPath, f.lastQuery
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func newTestServer(t *testing.T, cfg Config) (*Server, *fakeFRED) {
	t.Helper()

	observations := fixture(t, "series_observations.json")
	fake := &fakeFRED{routes: map[string]func(http.ResponseWriter){
		"/fred/series/observations": func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(observations)
		},
		"/fred/category": func(w http.ResponseWriter) {
			_, _ = io.WriteString(w, `{"categories":[{"id":125,"name":"Trade Balance","parent_id":13}]}`)
		},
		"/fred/tags": func(w http.ResponseWriter) {
			_, _ = io.WriteString(w, "not json")
		},
		"/fred/series": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error_code":400,"error_message":"Bad Request.  The series does not exist."}`)
		},
	}}
	upstream := httptest.NewServer(fake)
	t.Cleanup(upstream.Close)

	client, err := fredclient.New("K", fredclient.WithBaseURL(upstream.URL+"/fred"))
	require.NoError(t, err)

	tl := logging.NewTestLogger(t)
	return New(client, cfg, tl.Logger), fake
}

func get(t *testing.T, s *Server, target string, header ...string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestHealth(t *testing.T) {
	s, fake := newTestServer(t, DefaultConfig())

	for _, path := range []string{"/health", "/api/v1/health"} {
		w, resp := get(t, s, path)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, resp.Error)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "healthy", data["status"])
		assert.EqualValues(t, 19, data["operations"])
	}
	path, _ := fake.last()
	assert.Empty(t, path)
}

func TestListOperations(t *testing.T) {
	s, _ := newTestServer(t, DefaultConfig())

	w, resp := get(t, s, "/api/v1/operations")
	require.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]any)
	assert.EqualValues(t, 19, data["count"])
	ops := data["operations"].([]any)
	first := ops[0].(map[string]any)
	assert.Equal(t, "category", first["name"])
	assert.Equal(t, "category", first["path"])
	required := first["required"].([]any)
	assert.Equal(t, map[string]any{"name": "category_id", "type": "integer"}, required[0])
}

func TestListOperationsMatch(t *testing.T) {
	s, _ := newTestServer(t, DefaultConfig())

	w, resp := get(t, s, "/api/v1/operations?match=category_*")
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.EqualValues(t, 5, data["count"])

	w, resp = get(t, s, "/api/v1/operations?match=(series")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeBadRequest, resp.Error.Code)
}

func TestGetOperation(t *testing.T) {
	s, _ := newTestServer(t, DefaultConfig())

	w, resp := get(t, s, "/api/v1/operations/series_observations")
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "series/observations", data["path"])
	assert.Contains(t, data["describe"], "series_observations: ")
	assert.Contains(t, data["describe"], "  - series_id: string")

	w, resp = get(t, s, "/api/v1/operations/get_series")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.CodeNotFound, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, `unknown operation "get_series"`)
}

func TestCallObservations(t *testing.T) {
	s, fake := newTestServer(t, DefaultConfig())

	w, resp := get(t, s, "/api/v1/call/series_observations?series_id=GDP&observation_start=2020-01-01&api_key=stolen")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, resp.Error)

	data := resp.Data.(map[string]any)
	assert.EqualValues(t, 2, data["count"])
	obs := data["observations"].([]any)
	assert.Equal(t, "21727.657", obs[0].(map[string]any)["value"])

	path, query := fake.last()
	assert.Equal(t, "/fred/series/observations", path)
	assert.Equal(t, "GDP", query.Get("series_id"))
	assert.Equal(t, []string{"K"}, query["api_key"])
	assert.Equal(t, "json", query.Get("file_type"))
}

func TestCallCoercesIntegers(t *testing.T) {
	s, fake := newTestServer(t, DefaultConfig())

	w, _ := get(t, s, "/api/v1/call/category?category_id=125")
	require.Equal(t, http.StatusOK, w.Code)
	_, query := fake.last()
	assert.Equal(t, "125", query.Get("category_id"))

	w, resp := get(t, s, "/api/v1/call/category?category_id=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Error.Message, `parameter "category_id" must be of type integer`)
}

func TestCallErrors(t *testing.T) {
	s, _ := newTestServer(t, DefaultConfig())

	tests := []struct {
		name     string
		target   string
		status   int
		code     string
		upstream int
	}{
		{"unknown operation", "/api/v1/call/nope", http.StatusNotFound, response.CodeNotFound, 0},
		{"missing parameter", "/api/v1/call/series_observations", http.StatusBadRequest, response.CodeBadRequest, 0},
		{"upstream status", "/api/v1/call/series?series_id=NOPE", http.StatusBadGateway, response.CodeUpstreamStatus, http.StatusBadRequest},
		{"malformed body", "/api/v1/call/tags", http.StatusBadGateway, response.CodeMalformedResponse, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := get(t, s, tt.target)
			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, resp.Error)
			assert.Nil(t, resp.Data)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.upstream, resp.Error.UpstreamStatus)
		})
	}
}

func TestUpstreamErrorBodyPassedThrough(t *testing.T) {
	s, _ := newTestServer(t, DefaultConfig())

	_, resp := get(t, s, "/api/v1/call/series?series_id=NOPE")
	assert.Equal(t, `{"error_code":400,"error_message":"Bad Request.  The series does not exist."}`, resp.Error.Details)
}

func TestRoutingErrors(t *testing.T) {
	s, _ := newTestServer(t, DefaultConfig())

	w, resp := get(t, s, "/api/v2/operations")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.CodeNotFound, resp.Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAuthToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AuthToken = "gw"
	s, _ := newTestServer(t, cfg)

	w, _ := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = get(t, s, "/api/v1/health")
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := get(t, s, "/api/v1/operations")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.CodeUnauthorized, resp.Error.Code)

	w, _ = get(t, s, "/api/v1/operations", "X-Gateway-Token", "gw")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORSEnabled = true
	s, _ := newTestServer(t, cfg)

	w, _ := get(t, s, "/api/v1/operations")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestConfigAddr(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "localhost:8080", cfg.Addr())

	require.NoError(t, cfg.ParseAddr(":9090"))
	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ":9090", cfg.Addr())

	assert.Error(t, cfg.ParseAddr("9090"))
	assert.Error(t, cfg.ParseAddr("host:http"))
}

func TestListenAndServeShutsDown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	cfg := DefaultConfig()
	require.NoError(t, cfg.ParseAddr(addr))
	s, _ := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbaizam/fredclient/pkg/logging"
)

func TestChain(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(mark("first"), mark("second"), mark("third"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "third", "handler"}, order)
}

func TestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	var ctxRequestID string
	var ctxLogger *zerolog.Logger
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxRequestID = logging.RequestID(r.Context())
		ctxLogger = logging.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	h := chimw.RequestID(Logger(tl.Logger)(inner))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/operations", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.NotEmpty(t, ctxRequestID)
	assert.NotSame(t, logging.Default(), ctxLogger)

	tl.AssertContains(t, `"status":418`)
	tl.AssertContains(t, `"path":"/api/v1/operations"`)
	tl.AssertContains(t, `"request_id":"`+ctxRequestID+`"`)
	tl.AssertContains(t, "HTTP request")
}

func TestRecovery(t *testing.T) {
	tl := logging.NewTestLogger(t)

	h := Recovery(tl.Logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
	tl.AssertContains(t, "Panic recovered")
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("allow all", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowAll = true
		w := httptest.NewRecorder()
		CORS(cfg)(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("listed origin", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowedOrigins = []string{"https://example.org"}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://example.org")
		w := httptest.NewRecorder()
		CORS(cfg)(ok).ServeHTTP(w, req)
		assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))

		req.Header.Set("Origin", "https://evil.example")
		w = httptest.NewRecorder()
		CORS(cfg)(ok).ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		called := false
		next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
		w := httptest.NewRecorder()
		CORS(DefaultCORSConfig())(next).ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, called)
	})
}

func TestAuth(t *testing.T) {
	logger := zerolog.Nop()
	cfg := DefaultAuthConfig()
	cfg.Enabled = true
	cfg.Token = "s3cret"

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := Auth(cfg, &logger)(ok)

	tests := []struct {
		name   string
		path   string
		header map[string]string
		want   int
	}{
		{"public path", "/health", nil, http.StatusOK},
		{"missing token", "/api/v1/operations", nil, http.StatusUnauthorized},
		{"wrong token", "/api/v1/operations", map[string]string{"X-Gateway-Token": "nope"}, http.StatusUnauthorized},
		{"header token", "/api/v1/operations", map[string]string{"X-Gateway-Token": "s3cret"}, http.StatusOK},
		{"bearer token", "/api/v1/operations", map[string]string{"Authorization": "Bearer s3cret"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	t.Run("disabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		Auth(DefaultAuthConfig(), &logger)(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/operations", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

package middleware

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arbaizam/fredclient/internal/server/response"
)

// AuthConfig holds gateway access-token configuration. The token guards the
// gateway itself; it is unrelated to the FRED API key, which never leaves
// the server.
type AuthConfig struct {
	Enabled     bool
	Token       string
	HeaderName  string
	PublicPaths []string
}

// DefaultAuthConfig returns default authentication configuration.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		HeaderName:  "X-Gateway-Token",
		PublicPaths: []string{"/health"},
	}
}

// Auth rejects requests to non-public paths that lack the configured token.
func Auth(config AuthConfig, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled || slices.Contains(config.PublicPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r, config.HeaderName)
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(config.Token)) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("token_provided", token != "").
					Msg("Authentication failed")
				response.Unauthorized(w, "Invalid or missing gateway token",
					"Provide the token in the "+config.HeaderName+" header or as a Bearer token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request, header string) string {
	if token := r.Header.Get(header); token != "" {
		return token
	}
	auth := r.Header.Get("Authorization")
	return strings.TrimPrefix(auth, "Bearer ")
}

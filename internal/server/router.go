package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/arbaizam/fredclient/internal/server/handlers"
	"github.com/arbaizam/fredclient/internal/server/middleware"
	"github.com/arbaizam/fredclient/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	cfg := s.config

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Recovery(s.logger))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		r.Use(middleware.CORS(corsConfig))
	}

	if cfg.AuthToken != "" {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.Token = cfg.AuthToken
		if cfg.AuthHeader != "" {
			authConfig.HeaderName = cfg.AuthHeader
		}
		authConfig.PublicPaths = append(authConfig.PublicPaths, cfg.PathPrefix+"/health")
		r.Use(middleware.Auth(authConfig, s.logger))
	}

	h := handlers.New(s.client, s.startTime)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "Route not found", req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.MethodNotAllowed(w, req.Method)
	})

	r.Get("/health", h.HandleHealth)
	r.Route(cfg.PathPrefix, func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Get("/operations", h.HandleListOperations)
		r.Get("/operations/{name}", h.HandleGetOperation)
		r.Get("/call/{name}", h.HandleCall)
	})

	return r
}

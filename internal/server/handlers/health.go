package handlers

import (
	"net/http"
	"time"

	"github.com/arbaizam/fredclient/internal/server/response"
)

// HandleHealth handles GET /health (liveness probe). It never calls FRED.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":     "healthy",
		"service":    "fred-gateway",
		"version":    "v1",
		"operations": len(h.client.Operations()),
		"uptime":     time.Since(h.startTime).Round(time.Second).String(),
	})
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arbaizam/fredclient/internal/matcher"
	"github.com/arbaizam/fredclient/internal/server/response"
	"github.com/arbaizam/fredclient/pkg/endpoints"
)

// OperationDetail is a registry entry plus its human-readable description.
type OperationDetail struct {
	endpoints.EndpointSpec
	Describe string `json:"describe"`
}

// HandleListOperations handles GET /api/v1/operations. An optional match
// query narrows the list by operation name.
func (h *Handlers) HandleListOperations(w http.ResponseWriter, r *http.Request) {
	specs := h.client.Endpoints()
	if pattern := r.URL.Query().Get("match"); pattern != "" {
		m, err := matcher.New(pattern)
		if err != nil {
			response.BadRequest(w, "invalid match pattern", err.Error())
			return
		}
		kept := specs[:0]
		for _, s := range specs {
			if m.Match(s.Name) {
				kept = append(kept, s)
			}
		}
		specs = kept
	}
	response.OK(w, map[string]any{
		"count":      len(specs),
		"operations": specs,
	})
}

// HandleGetOperation handles GET /api/v1/operations/{name}.
func (h *Handlers) HandleGetOperation(w http.ResponseWriter, r *http.Request) {
	spec, err := h.client.Registry().Lookup(chi.URLParam(r, "name"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, OperationDetail{
		EndpointSpec: spec,
		Describe:     endpoints.Describe(spec),
	})
}

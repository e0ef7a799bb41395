package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arbaizam/fredclient/internal/server/response"
	"github.com/arbaizam/fredclient/pkg/constants"
	"github.com/arbaizam/fredclient/pkg/dispatch"
	"github.com/arbaizam/fredclient/pkg/logging"
)

// HandleCall handles GET /api/v1/call/{name}?k=v. Query values are coerced
// to the declared parameter types; repeated keys are joined with commas.
// The FRED body is returned unchanged under "data".
func (h *Handlers) HandleCall(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctx := logging.WithOperation(r.Context(), name)

	spec, err := h.client.Registry().Lookup(name)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	raw := make(map[string]string)
	for k, vs := range r.URL.Query() {
		if k == constants.APIKeyParam {
			continue
		}
		raw[k] = strings.Join(vs, ",")
	}

	args, err := dispatch.Coerce(spec, raw)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	value, err := h.client.Call(ctx, name, args)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Int("status", response.StatusFor(err)).
			Msg("FRED call failed")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, value)
}

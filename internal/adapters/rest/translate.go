package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
)

type translateRequest struct {
	Vibe  string         `json:"vibe"`
	Hints map[string]any `json:"hints,omitempty"`
}

type translateResponse struct {
	Spec domain.PlaylistSpec `json:"spec"`
}

// Translate handles POST /translate: vibe text in, validated spec out.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Vibe == "" {
		writeError(w, http.StatusBadRequest, "vibe is required")
		return
	}

	spec, err := h.translator.Translate(r.Context(), req.Vibe, req.Hints)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{Spec: spec})
}

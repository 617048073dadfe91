package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
)

type recommendRequest struct {
	Spec  json.RawMessage `json:"spec"`
	Count int             `json:"count,omitempty"`
}

type recommendResponse struct {
	Tracks []domain.Track `json:"tracks"`
}

// Recommend handles POST /recommend, the legacy parameter-based path.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Spec) == 0 {
		writeError(w, http.StatusBadRequest, "spec is required")
		return
	}

	spec, err := domain.ParseSpec(req.Spec)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	token := bearerToken(r)
	if token == "" {
		writeCoreError(w, domain.ErrUnauthorized)
		return
	}

	tracks, err := h.recommender.Recommend(r.Context(), spec, token, req.Count)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendResponse{Tracks: tracks})
}

package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
	"github.com/ewilliams-labs/vibecraft/internal/worker"
)

type discoverRequest struct {
	Vibe string          `json:"vibe"`
	Spec json.RawMessage `json:"spec"`
}

// Discover handles POST /discover: validates the spec, runs the discovery
// pipeline, and queues preview analysis for the returned tracks.
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req discoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Vibe == "" {
		writeError(w, http.StatusBadRequest, "vibe is required")
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

	result, err := h.discovery.DiscoverFromVibe(r.Context(), req.Vibe, spec, token)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	if h.pool != nil {
		for _, t := range result.Tracks {
			if t.PreviewURL != "" {
				h.pool.Submit(worker.Job{TrackID: t.ID, PreviewURL: t.PreviewURL})
			}
		}
	}

	writeJSON(w, http.StatusOK, result)
}

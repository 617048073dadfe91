package rest

import (
	"encoding/json"
	"net/http"
)

type createPlaylistRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URIs        []string `json:"uris"`
}

type createPlaylistResponse struct {
	PlaylistID string `json:"playlistId"`
	URL        string `json:"url"`
}

// CreatePlaylist handles POST /playlists: creates a playlist on the catalog
// and adds the given track URIs verbatim.
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || len(req.URIs) == 0 {
		writeError(w, http.StatusBadRequest, "name and uris are required")
		return
	}

	token := bearerToken(r)

	ref, err := h.discovery.SaveAsPlaylist(r.Context(), token, req.Name, req.Description, req.URIs)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createPlaylistResponse{PlaylistID: ref.ID, URL: ref.URL})
}

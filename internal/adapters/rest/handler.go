// Package rest is the driving HTTP adapter. Authentication lives outside
// this service; handlers only extract the caller's bearer token and map core
// errors onto status codes.
package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/vibecraft/internal/core/services"
	"github.com/ewilliams-labs/vibecraft/internal/worker"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	discovery   *services.Discovery
	translator  *services.Translator
	recommender *services.Recommender
	pool        *worker.Pool // optional
	router      *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes. pool may be
// nil to disable preview analysis.
func NewHandler(discovery *services.Discovery, translator *services.Translator, recommender *services.Recommender, pool *worker.Pool) *Handler {
	h := &Handler{
		discovery:   discovery,
		translator:  translator,
		recommender: recommender,
		pool:        pool,
		router:      http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface. Every request gets a
// request ID for log correlation before being passed to the router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	log.Printf("DEBUG rest: %s %s %s", requestID, r.Method, r.URL.Path)
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("POST /translate", h.Translate)
	h.router.HandleFunc("POST /discover", h.Discover)
	h.router.HandleFunc("POST /recommend", h.Recommend)
	h.router.HandleFunc("POST /playlists", h.CreatePlaylist)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "message": "vibecraft is live"})
}

package rest

import (
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
)

type errorResponse struct {
	Error   string                  `json:"error"`
	Code    string                  `json:"code,omitempty"`
	Details []domain.FieldViolation `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("WARN rest: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeCoreError maps the core error taxonomy onto HTTP statuses: validation
// 400 with field detail, missing credential 401, translation failure 502,
// everything else 500.
func writeCoreError(w http.ResponseWriter, err error) {
	var specErr *domain.InvalidSpecError
	if errors.As(err, &specErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid spec",
			Code:    "INVALID_SPEC",
			Details: specErr.Violations,
		})
		return
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Code: "UNAUTHORIZED"})
		return
	}
	if errors.Is(err, domain.ErrTranslationFailed) {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Code: "TRANSLATION_FAILED"})
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// bearerToken extracts the access credential from the Authorization header;
// empty when absent or malformed.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

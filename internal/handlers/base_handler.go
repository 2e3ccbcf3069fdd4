// Package handlers maps HTTP requests onto the service layer.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/learntrail/backend/internal/apperrors"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

// userIDHeader identifies the caller; authentication is handled upstream
const userIDHeader = "X-User-ID"

type BaseHandler struct {
	logger      *zap.Logger
	development bool
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondAppError maps a service error onto its HTTP status and code. The
// detail string is only exposed in development.
func (h *BaseHandler) respondAppError(w http.ResponseWriter, err error) {
	appErr := apperrors.From(err)
	if appErr.Code == apperrors.CodeInternal {
		h.logger.Error("request failed", zap.Error(err))
	}

	body := *appErr
	if !h.development {
		body.Detail = ""
	}
	h.respondJSON(w, appErr.Status(), body)
}

// userID extracts the caller's user ID from the request header
func (h *BaseHandler) userID(r *http.Request) (int64, bool) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pathID parses an int64 path parameter
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// levelParam parses and validates the {level} path parameter
func levelParam(r *http.Request) (models.Level, bool) {
	level := models.Level(chi.URLParam(r, "level"))
	return level, level.Valid()
}

// queryInt parses an optional positive integer query parameter, returning
// fallback when absent or malformed
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

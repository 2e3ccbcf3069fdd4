package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps methods for progress business logic.
type ProgressService interface {
	// Update marks a roadmap step complete or incomplete for the user.
	Update(ctx context.Context, userID, roadmapID int64, req models.UpdateProgressRequest) (*models.ProgressRecord, error)
	// List retrieves the user's completion state across one roadmap.
	List(ctx context.Context, userID, roadmapID int64) ([]models.ProgressRecord, error)
}

// ProgressHandler handles HTTP requests for step completion tracking
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger, development bool) *ProgressHandler {
	return &ProgressHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger, development: development},
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/roadmaps/{roadmapId}/progress", func(r chi.Router) {
		r.Put("/", h.Update)
		r.Get("/", h.List)
	})
}

// Update handles PUT /api/v1/roadmaps/{roadmapId}/progress
// @Summary Update step progress
// @Description Mark a roadmap step complete or incomplete for the calling user
// @Tags progress
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Caller user ID"
// @Param roadmapId path int true "Roadmap ID"
// @Param request body models.UpdateProgressRequest true "Step and completion state"
// @Success 200 {object} models.ProgressRecord
// @Failure 400 {object} apperrors.Error
// @Failure 404 {object} apperrors.Error
// @Router /api/v1/roadmaps/{roadmapId}/progress [put]
func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}
	roadmapID, err := pathID(r, "roadmapId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid roadmap id")
		return
	}

	var req models.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.service.Update(r.Context(), userID, roadmapID, req)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}

// List handles GET /api/v1/roadmaps/{roadmapId}/progress
// @Summary List step progress
// @Description List the calling user's completion state for every tracked step of a roadmap
// @Tags progress
// @Produce json
// @Param X-User-ID header int true "Caller user ID"
// @Param roadmapId path int true "Roadmap ID"
// @Success 200 {array} models.ProgressRecord
// @Failure 400 {object} apperrors.Error
// @Router /api/v1/roadmaps/{roadmapId}/progress [get]
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}
	roadmapID, err := pathID(r, "roadmapId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid roadmap id")
		return
	}

	records, err := h.service.List(r.Context(), userID, roadmapID)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	if records == nil {
		records = []models.ProgressRecord{}
	}

	h.respondJSON(w, http.StatusOK, records)
}

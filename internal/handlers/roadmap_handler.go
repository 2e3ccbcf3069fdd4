package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

// RoadmapsService is the interface that wraps methods for roadmap business logic.
type RoadmapsService interface {
	// Generate records the submitted topic, produces a roadmap through the
	// content generator and persists it in normalized form.
	Generate(ctx context.Context, userID int64, req models.GenerateRoadmapRequest) (*models.UserRoadmap, error)
	// Get retrieves a roadmap in normalized form, migrating legacy-shaped
	// rows on read.
	Get(ctx context.Context, id int64) (*models.UserRoadmap, error)
	// ListByUser retrieves all roadmaps owned by a user.
	ListByUser(ctx context.Context, userID int64) ([]models.UserRoadmap, error)
	// Delete removes a roadmap together with its videos, progress and quizzes.
	Delete(ctx context.Context, id int64) error
}

// RoadmapsHandler handles HTTP requests for roadmaps
type RoadmapsHandler struct {
	BaseHandler
	service RoadmapsService
}

// NewRoadmapsHandler creates a new roadmap handler
func NewRoadmapsHandler(svc RoadmapsService, logger *zap.Logger, development bool) *RoadmapsHandler {
	return &RoadmapsHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger, development: development},
	}
}

// RegisterRoutes registers all roadmap handler routes
func (h *RoadmapsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/roadmaps", func(r chi.Router) {
		r.Post("/", h.Generate)
		r.Get("/", h.ListByUser)
		r.Get("/{roadmapId}", h.Get)
		r.Delete("/{roadmapId}", h.Delete)
	})
}

// Generate handles POST /api/v1/roadmaps
// @Summary Generate a roadmap
// @Description Generate and persist a learning roadmap for a free-text topic
// @Tags roadmaps
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Caller user ID"
// @Param request body models.GenerateRoadmapRequest true "Topic and preferences"
// @Success 201 {object} models.UserRoadmap
// @Failure 400 {object} apperrors.Error
// @Failure 502 {object} apperrors.Error
// @Router /api/v1/roadmaps [post]
func (h *RoadmapsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	var req models.GenerateRoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	roadmap, err := h.service.Generate(r.Context(), userID, req)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, roadmap)
}

// Get handles GET /api/v1/roadmaps/{roadmapId}
// @Summary Get a roadmap
// @Description Get a roadmap by ID with normalized step structure
// @Tags roadmaps
// @Produce json
// @Param roadmapId path int true "Roadmap ID"
// @Success 200 {object} models.UserRoadmap
// @Failure 404 {object} apperrors.Error
// @Router /api/v1/roadmaps/{roadmapId} [get]
func (h *RoadmapsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "roadmapId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid roadmap id")
		return
	}

	roadmap, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, roadmap)
}

// ListByUser handles GET /api/v1/roadmaps
// @Summary List roadmaps
// @Description List all roadmaps of the calling user
// @Tags roadmaps
// @Produce json
// @Param X-User-ID header int true "Caller user ID"
// @Success 200 {array} models.UserRoadmap
// @Failure 400 {object} apperrors.Error
// @Router /api/v1/roadmaps [get]
func (h *RoadmapsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	roadmaps, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	if roadmaps == nil {
		roadmaps = []models.UserRoadmap{}
	}

	h.respondJSON(w, http.StatusOK, roadmaps)
}

// Delete handles DELETE /api/v1/roadmaps/{roadmapId}
// @Summary Delete a roadmap
// @Description Delete a roadmap and its videos, progress and quizzes
// @Tags roadmaps
// @Produce json
// @Param roadmapId path int true "Roadmap ID"
// @Success 204 "No Content"
// @Failure 404 {object} apperrors.Error
// @Router /api/v1/roadmaps/{roadmapId} [delete]
func (h *RoadmapsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "roadmapId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid roadmap id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondAppError(w, err)
		return
	}

	h.logger.Info("roadmap deleted", zap.Int64("roadmap_id", id))
	w.WriteHeader(http.StatusNoContent)
}

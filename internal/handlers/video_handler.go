package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learntrail/backend/internal/clients/gemini"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

// VideosService is the interface that wraps methods for video playlist business logic.
type VideosService interface {
	// GetPlaylist returns the current video set for one step and page,
	// generating and storing one when nothing is stored yet.
	GetPlaylist(ctx context.Context, roadmapID int64, level models.Level, stepID string, pageNumber int, prefs gemini.Preferences) (*models.VideoRecord, error)
	// Regenerate produces a fresh set for the step at page 1; prior pages
	// shift down by one.
	Regenerate(ctx context.Context, roadmapID int64, level models.Level, stepID string, prefs gemini.Preferences) (*models.VideoRecord, error)
	// GetLevelPlaylists returns the current set of every step on a level and
	// page, keyed by step ID.
	GetLevelPlaylists(ctx context.Context, roadmapID int64, level models.Level, pageNumber int) (map[string]models.VideoRecord, error)
	// List returns all stored records with optional level and page filters.
	List(ctx context.Context, roadmapID int64, level *models.Level, pageNumber *int) ([]models.VideoRecord, error)
	// NextStepNumber allocates the ordinal for appending a step outside the
	// normal roadmap flow.
	NextStepNumber(ctx context.Context, roadmapID int64, level models.Level) int
}

// VideosHandler handles HTTP requests for step video playlists
type VideosHandler struct {
	BaseHandler
	service VideosService
}

// NewVideosHandler creates a new video handler
func NewVideosHandler(svc VideosService, logger *zap.Logger, development bool) *VideosHandler {
	return &VideosHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger, development: development},
	}
}

// RegisterRoutes registers all video handler routes
func (h *VideosHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/roadmaps/{roadmapId}/videos", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{level}", h.GetLevelPlaylists)
		r.Get("/{level}/next-step", h.NextStep)
		r.Get("/{level}/{stepId}", h.GetPlaylist)
		r.Post("/{level}/{stepId}/regenerate", h.Regenerate)
	})
}

func prefsFromQuery(r *http.Request) gemini.Preferences {
	return gemini.Preferences{
		Depth:       r.URL.Query().Get("depth"),
		VideoLength: r.URL.Query().Get("videoLength"),
	}
}

// GetPlaylist handles GET /api/v1/roadmaps/{roadmapId}/videos/{level}/{stepId}
// @Summary Get a step playlist
// @Description Get the current video set for one roadmap step, generating it on first access
// @Tags videos
// @Produce json
// @Param roadmapId path int true "Roadmap ID"
// @Param level path string true "Level: beginner, intermediate or advanced"
// @Param stepId path string true "Step ID, e.g. step_1"
// @Param page query int false "Page number, default 1"
// @Param videoLength query string false "Preferred video length: short, medium or long"
// @Success 200 {object} models.VideoRecord
// @Failure 400 {object} apperrors.Error
// @Failure 404 {object} apperrors.Error
// @Failure 502 {object} apperrors.Error
// @Router /api/v1/roadmaps/{roadmapId}/videos/{level}/{stepId} [get]
func (h *VideosHandler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	roadmapID, err := pathID(r, "roadmapId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid roadmap id")
		return
	}
	level, ok := levelParam(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid level")
		return
	}
	stepID := chi.URLParam(r, "stepId")
	page := queryInt(r, "page", 1)

	record, err := h.service.GetPlaylist(r.Context(), roadmapID, level, stepID, page, prefsFromQuery(r))
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}

// Regenerate handles POST /api/v1/roadmaps/{roadmapId}/videos/{level}/{stepId}/regenerate
// @Summary Regenerate a step playlist
// @Description Generate a fresh video set at page 1; existing pages shift down by one
// @Tags videos
// @Accept json
// @Produce json
// @Param roadmapId path int true "Roadmap ID"
// @Param level path string true "Level: beginner, intermediate or advanced"
// @Param stepId path string true "Step ID, e.g. step_1"
// @Param request body models.RegenerateVideosRequest false "Generation preferences"
// @Success 201 {object} models.VideoRecord
// @Failure 400 {object} apperrors.Error
// @Failure 404 {object} apperrors.Error
// @Failure 502 {object} apperrors.Error
// @Router /api/v1/roadmaps/{roadmapId}/videos/{level}/{stepId}/regenerate [post]
func (h *VideosHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	roadmapID, err := pathID(r, "roadmapId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid roadmap id")
		return
	}
	level, ok := levelParam(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid level")
		return
	}
	stepID := chi.URLParam(r, "stepId")

	var req models.RegenerateVideosRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	record, err := h.service.Regenerate(r.Context(), roadmapID, level, stepID, gemini.Preferences{
		VideoLength: req.VideoLengthPreference,
	})
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, record)
}

// GetLevelPlaylists handles GET /api/v1/roadmaps/{roadmapId}/videos/{level}
// @Summary Get all step playlists of a level
// @Description Get the current video set of every step on one level and page, keyed by step ID
// @Tags videos
// @Produce json
// @Param roadmapId path int true "Roadmap ID"
// @Param level path string true "Level: beginner, intermediate or advanced"
// @Param page query int false "Page number, default 1"
// @Success 200 {object} map[string]models.VideoRecord
// @Failure 400 {object} apperrors.Error
// @Router /api/v1/roadmaps/{roadmapId}/videos/{level} [get]
func (h *VideosHandler) GetLevelPlaylists(w http.ResponseWriter, r *http.Request) {
	roadmapID, err := pathID(r, "roadmapId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid roadmap id")
		return
	}
	level, ok := levelParam(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid level")
		return
	}
	page := queryInt(r, "page", 1)

	records, err := h.service.GetLevelPlaylists(r.Context(), roadmapID, level, page)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	if records == nil {
		records = map[string]models.VideoRecord{}
	}

	h.respondJSON(w, http.StatusOK, records)
}

// List handles GET /api/v1/roadmaps/{roadmapId}/videos
// @Summary List stored video records
// @Description List all stored video records of a roadmap with optional level and page filters
// @Tags videos
// @Produce json
// @Param roadmapId path int true "Roadmap ID"
// @Param level query string false "Level filter"
// @Param page query int false "Page filter"
// @Success 200 {array} models.VideoRecord
// @Failure 400 {object} apperrors.Error
// @Router /api/v1/roadmaps/{roadmapId}/videos [get]
func (h *VideosHandler) List(w http.ResponseWriter, r *http.Request) {
	roadmapID, err := pathID(r, "roadmapId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid roadmap id")
		return
	}

	var level *models.Level
	if raw := r.URL.Query().Get("level"); raw != "" {
		l := models.Level(raw)
		level = &l
	}
	var page *int
	if raw := r.URL.Query().Get("page"); raw != "" {
		p := queryInt(r, "page", 1)
		page = &p
	}

	records, err := h.service.List(r.Context(), roadmapID, level, page)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	if records == nil {
		records = []models.VideoRecord{}
	}

	h.respondJSON(w, http.StatusOK, records)
}

// NextStep handles GET /api/v1/roadmaps/{roadmapId}/videos/{level}/next-step
// @Summary Get the next step number
// @Description Get the step number the next ad hoc video generation should use for the level
// @Tags videos
// @Produce json
// @Param roadmapId path int true "Roadmap ID"
// @Param level path string true "Level: beginner, intermediate or advanced"
// @Success 200 {object} map[string]int
// @Failure 400 {object} apperrors.Error
// @Router /api/v1/roadmaps/{roadmapId}/videos/{level}/next-step [get]
func (h *VideosHandler) NextStep(w http.ResponseWriter, r *http.Request) {
	roadmapID, err := pathID(r, "roadmapId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid roadmap id")
		return
	}
	level, ok := levelParam(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid level")
		return
	}

	next := h.service.NextStepNumber(r.Context(), roadmapID, level)
	h.respondJSON(w, http.StatusOK, map[string]int{"nextStepNumber": next})
}

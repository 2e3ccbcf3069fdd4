package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

// QuizzesService is the interface that wraps methods for quiz business logic.
type QuizzesService interface {
	// Generate produces and persists a quiz over the roadmap's structure,
	// avoiding previously used question texts.
	Generate(ctx context.Context, userID, roadmapID int64) (*models.UserQuiz, error)
	// Get retrieves a quiz with its questions.
	Get(ctx context.Context, id int64) (*models.UserQuiz, error)
	// RecordAttempt stores one completed quiz run.
	RecordAttempt(ctx context.Context, quizID, userID int64, req models.RecordAttemptRequest) (*models.QuizAttempt, error)
	// ListAttempts retrieves all attempts for a quiz, newest first.
	ListAttempts(ctx context.Context, quizID int64) ([]models.QuizAttempt, error)
}

// QuizzesHandler handles HTTP requests for quizzes
type QuizzesHandler struct {
	BaseHandler
	service QuizzesService
}

// NewQuizzesHandler creates a new quiz handler
func NewQuizzesHandler(svc QuizzesService, logger *zap.Logger, development bool) *QuizzesHandler {
	return &QuizzesHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger, development: development},
	}
}

// RegisterRoutes registers all quiz handler routes
func (h *QuizzesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/roadmaps/{roadmapId}/quizzes", h.Generate)
		r.Route("/quizzes/{quizId}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/attempts", h.RecordAttempt)
			r.Get("/attempts", h.ListAttempts)
		})
	})
}

// Generate handles POST /api/v1/roadmaps/{roadmapId}/quizzes
// @Summary Generate a quiz
// @Description Generate and persist a quiz over the roadmap's steps
// @Tags quizzes
// @Produce json
// @Param X-User-ID header int true "Caller user ID"
// @Param roadmapId path int true "Roadmap ID"
// @Success 201 {object} models.UserQuiz
// @Failure 400 {object} apperrors.Error
// @Failure 404 {object} apperrors.Error
// @Failure 502 {object} apperrors.Error
// @Router /api/v1/roadmaps/{roadmapId}/quizzes [post]
func (h *QuizzesHandler) Generate(w http.ResponseWriter, r *http.Request) {
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

	quiz, err := h.service.Generate(r.Context(), userID, roadmapID)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, quiz)
}

// Get handles GET /api/v1/quizzes/{quizId}
// @Summary Get a quiz
// @Description Get a quiz with its questions
// @Tags quizzes
// @Produce json
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} models.UserQuiz
// @Failure 404 {object} apperrors.Error
// @Router /api/v1/quizzes/{quizId} [get]
func (h *QuizzesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "quizId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid quiz id")
		return
	}

	quiz, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, quiz)
}

// RecordAttempt handles POST /api/v1/quizzes/{quizId}/attempts
// @Summary Record a quiz attempt
// @Description Record the score of one completed quiz run
// @Tags quizzes
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Caller user ID"
// @Param quizId path int true "Quiz ID"
// @Param request body models.RecordAttemptRequest true "Score"
// @Success 201 {object} models.QuizAttempt
// @Failure 400 {object} apperrors.Error
// @Failure 404 {object} apperrors.Error
// @Router /api/v1/quizzes/{quizId}/attempts [post]
func (h *QuizzesHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}
	quizID, err := pathID(r, "quizId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid quiz id")
		return
	}

	var req models.RecordAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attempt, err := h.service.RecordAttempt(r.Context(), quizID, userID, req)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, attempt)
}

// ListAttempts handles GET /api/v1/quizzes/{quizId}/attempts
// @Summary List quiz attempts
// @Description List all recorded attempts for a quiz, newest first
// @Tags quizzes
// @Produce json
// @Param quizId path int true "Quiz ID"
// @Success 200 {array} models.QuizAttempt
// @Failure 400 {object} apperrors.Error
// @Router /api/v1/quizzes/{quizId}/attempts [get]
func (h *QuizzesHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quizId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid quiz id")
		return
	}

	attempts, err := h.service.ListAttempts(r.Context(), quizID)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	if attempts == nil {
		attempts = []models.QuizAttempt{}
	}

	h.respondJSON(w, http.StatusOK, attempts)
}

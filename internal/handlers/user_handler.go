package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

// UsersService is the interface that wraps methods for user business logic.
type UsersService interface {
	// Create registers a new user.
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	// Get retrieves a user by id.
	Get(ctx context.Context, id int64) (*models.User, error)
	// ListTopics retrieves the topics a user has submitted.
	ListTopics(ctx context.Context, userID int64) ([]models.UserTopic, error)
}

// UsersHandler handles HTTP requests for users
type UsersHandler struct {
	BaseHandler
	service UsersService
}

// NewUsersHandler creates a new user handler
func NewUsersHandler(svc UsersService, logger *zap.Logger, development bool) *UsersHandler {
	return &UsersHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger, development: development},
	}
}

// RegisterRoutes registers all user handler routes
func (h *UsersHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{userId}", h.Get)
		r.Get("/{userId}/topics", h.ListTopics)
	})
}

// Create handles POST /api/v1/users
// @Summary Create a user
// @Description Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "Email and name"
// @Success 201 {object} models.User
// @Failure 400 {object} apperrors.Error
// @Router /api/v1/users [post]
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, user)
}

// Get handles GET /api/v1/users/{userId}
// @Summary Get a user
// @Description Get a user by ID
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} apperrors.Error
// @Router /api/v1/users/{userId} [get]
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// ListTopics handles GET /api/v1/users/{userId}/topics
// @Summary List submitted topics
// @Description List the topics a user has submitted, newest first
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} models.UserTopic
// @Failure 400 {object} apperrors.Error
// @Router /api/v1/users/{userId}/topics [get]
func (h *UsersHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	topics, err := h.service.ListTopics(r.Context(), userID)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	if topics == nil {
		topics = []models.UserTopic{}
	}

	h.respondJSON(w, http.StatusOK, topics)
}

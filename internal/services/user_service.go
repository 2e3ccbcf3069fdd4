package services

import (
	"context"
	"strings"

	"github.com/learntrail/backend/internal/apperrors"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

// UsersRepository defines the user storage operations the service needs
type UsersRepository interface {
	Create(ctx context.Context, email, name string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListTopics(ctx context.Context, userID int64) ([]models.UserTopic, error)
}

type userService struct {
	users  UsersRepository
	logger *zap.Logger
}

// NewUserService creates a new instance of the UserService interface
func NewUserService(users UsersRepository, logger *zap.Logger) *userService {
	return &userService{
		users:  users,
		logger: logger,
	}
}

// Create registers a new user
func (s *userService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.InvalidRequest("a valid email is required")
	}
	if name == "" {
		return nil, apperrors.InvalidRequest("name is required")
	}
	return s.users.Create(ctx, email, name)
}

// Get retrieves a user by id
func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListTopics retrieves the topics a user has submitted
func (s *userService) ListTopics(ctx context.Context, userID int64) ([]models.UserTopic, error) {
	return s.users.ListTopics(ctx, userID)
}

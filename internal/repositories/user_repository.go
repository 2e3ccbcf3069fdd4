package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/learntrail/backend/internal/apperrors"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

type usersRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUsersRepository creates a new instance of the UsersRepository interface
func NewUsersRepository(db *sql.DB, logger *zap.Logger) *usersRepository {
	return &usersRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user
func (r *usersRepository) Create(ctx context.Context, email, name string) (*models.User, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, name, created_at)
		VALUES (?, ?, ?)
	`, email, name, now)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.New(apperrors.CodeInvalidRequest, "email already registered")
		}
		r.logger.Error("failed to insert user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}

	return &models.User{
		ID:        id,
		Email:     email,
		Name:      name,
		CreatedAt: now,
	}, nil
}

// GetByID retrieves a user by id
func (r *usersRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, created_at
		FROM users
		WHERE id = ?
	`, id).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		r.logger.Error("failed to query user", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// CreateTopic records a free-text learning topic submitted by the user
func (r *usersRepository) CreateTopic(ctx context.Context, userID int64, topic string) (*models.UserTopic, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO user_topics (user_id, topic, created_at)
		VALUES (?, ?, ?)
	`, userID, topic, now)
	if err != nil {
		r.logger.Error("failed to insert topic", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read topic id: %w", err)
	}

	return &models.UserTopic{
		ID:        id,
		UserID:    userID,
		Topic:     topic,
		CreatedAt: now,
	}, nil
}

// ListTopics retrieves a user's submitted topics, newest first
func (r *usersRepository) ListTopics(ctx context.Context, userID int64) ([]models.UserTopic, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, topic, created_at
		FROM user_topics
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		r.logger.Error("failed to query topics", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	var topics []models.UserTopic
	for rows.Next() {
		var topic models.UserTopic
		if err := rows.Scan(&topic.ID, &topic.UserID, &topic.Topic, &topic.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return topics, nil
}

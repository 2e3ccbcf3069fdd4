package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/learntrail/backend/internal/apperrors"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

type roadmapsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRoadmapsRepository creates a new instance of the RoadmapsRepository interface
func NewRoadmapsRepository(db *sql.DB, logger *zap.Logger) *roadmapsRepository {
	return &roadmapsRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a freshly generated roadmap
func (r *roadmapsRepository) Create(ctx context.Context, userID, topicID int64, topic string, data models.RoadmapLevels) (*models.UserRoadmap, error) {
	roadmapData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode roadmap data: %w", err)
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO user_roadmaps (user_id, topic_id, topic, roadmap_data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, userID, topicID, topic, roadmapData, now, now)
	if err != nil {
		r.logger.Error("failed to insert roadmap", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to create roadmap: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read roadmap id: %w", err)
	}

	return &models.UserRoadmap{
		ID:        id,
		UserID:    userID,
		TopicID:   topicID,
		Topic:     topic,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetByID retrieves a roadmap. The stored roadmap_data is decoded through
// the level tagged union, so both legacy array-shaped and normalized
// step-map rows load.
func (r *roadmapsRepository) GetByID(ctx context.Context, id int64) (*models.UserRoadmap, error) {
	var roadmap models.UserRoadmap
	var roadmapData []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, topic_id, topic, roadmap_data, created_at, updated_at
		FROM user_roadmaps
		WHERE id = ?
	`, id).Scan(
		&roadmap.ID,
		&roadmap.UserID,
		&roadmap.TopicID,
		&roadmap.Topic,
		&roadmapData,
		&roadmap.CreatedAt,
		&roadmap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("roadmap not found")
		}
		r.logger.Error("failed to query roadmap", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to query roadmap: %w", err)
	}

	if err := json.Unmarshal(roadmapData, &roadmap.Data); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidStructure, "roadmap data is malformed", err)
	}

	return &roadmap, nil
}

// UpdateData rewrites the stored roadmap_data. Used after the normalizer
// migrates a legacy-shaped roadmap.
func (r *roadmapsRepository) UpdateData(ctx context.Context, id int64, data models.RoadmapLevels) error {
	roadmapData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode roadmap data: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE user_roadmaps
		SET roadmap_data = ?, updated_at = ?
		WHERE id = ?
	`, roadmapData, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error("failed to update roadmap data", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to update roadmap: %w", err)
	}
	return nil
}

// ListByUser retrieves all roadmaps owned by a user
func (r *roadmapsRepository) ListByUser(ctx context.Context, userID int64) ([]models.UserRoadmap, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, topic_id, topic, roadmap_data, created_at, updated_at
		FROM user_roadmaps
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		r.logger.Error("failed to query roadmaps", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to query roadmaps: %w", err)
	}
	defer rows.Close()

	var roadmaps []models.UserRoadmap
	for rows.Next() {
		var roadmap models.UserRoadmap
		var roadmapData []byte
		if err := rows.Scan(
			&roadmap.ID,
			&roadmap.UserID,
			&roadmap.TopicID,
			&roadmap.Topic,
			&roadmapData,
			&roadmap.CreatedAt,
			&roadmap.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan roadmap: %w", err)
		}
		if err := json.Unmarshal(roadmapData, &roadmap.Data); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidStructure, "roadmap data is malformed", err)
		}
		roadmaps = append(roadmaps, roadmap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return roadmaps, nil
}

// Delete removes a roadmap; videos, progress and quizzes cascade via
// foreign keys
func (r *roadmapsRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM user_roadmaps WHERE id = ?", id)
	if err != nil {
		r.logger.Error("failed to delete roadmap", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to delete roadmap: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("roadmap not found")
	}
	return nil
}

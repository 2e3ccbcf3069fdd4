package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

type progressRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProgressRepository creates a new instance of the ProgressRepository interface
func NewProgressRepository(db *sql.DB, logger *zap.Logger) *progressRepository {
	return &progressRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert creates or updates the completion state for one
// (user, roadmap, point) key
func (r *progressRepository) Upsert(ctx context.Context, userID, roadmapID int64, pointID string, isCompleted bool) (*models.ProgressRecord, error) {
	var completedAt *time.Time
	if isCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO roadmap_progress (user_id, roadmap_id, point_id, is_completed, completed_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE is_completed = VALUES(is_completed), completed_at = VALUES(completed_at)
	`, userID, roadmapID, pointID, isCompleted, completedAt)
	if err != nil {
		r.logger.Error("failed to upsert progress", zap.Error(err),
			zap.Int64("user_id", userID), zap.String("point_id", pointID))
		return nil, fmt.Errorf("failed to upsert progress: %w", err)
	}

	return &models.ProgressRecord{
		UserID:      userID,
		RoadmapID:   roadmapID,
		PointID:     pointID,
		IsCompleted: isCompleted,
		CompletedAt: completedAt,
	}, nil
}

// ListByRoadmap retrieves all progress records of a user for one roadmap
func (r *progressRepository) ListByRoadmap(ctx context.Context, userID, roadmapID int64) ([]models.ProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, roadmap_id, point_id, is_completed, completed_at
		FROM roadmap_progress
		WHERE user_id = ? AND roadmap_id = ?
		ORDER BY point_id
	`, userID, roadmapID)
	if err != nil {
		r.logger.Error("failed to query progress", zap.Error(err),
			zap.Int64("user_id", userID), zap.Int64("roadmap_id", roadmapID))
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		var record models.ProgressRecord
		var completedAt sql.NullTime
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.RoadmapID,
			&record.PointID,
			&record.IsCompleted,
			&completedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		if completedAt.Valid {
			record.CompletedAt = &completedAt.Time
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

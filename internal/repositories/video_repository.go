package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

const videoColumns = "id, user_roadmap_id, level, point_id, page_number, generation_number, video_data, created_at, updated_at"

type videosRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVideosRepository creates a new instance of the VideosRepository interface
func NewVideosRepository(db *sql.DB, logger *zap.Logger) *videosRepository {
	return &videosRepository{
		db:     db,
		logger: logger,
	}
}

// Store persists a generated video set for one (roadmap, level, step, page)
// key. Every item is stamped with the owning step ID and a write-time
// timestamp before persistence.
//
// Without isRegenerate, generations are append-only: a new row is written at
// max(existing generation)+1 and older generations are retained. With
// isRegenerate, all existing pages for the step are demoted by one page and
// the new content becomes page 1 generation 1; the page shift and insert run
// in one transaction so a reader never observes two rows claiming page 1.
func (r *videosRepository) Store(ctx context.Context, roadmapID int64, level models.Level, stepID string, pageNumber int, items []models.VideoItem, isRegenerate bool) (*models.VideoRecord, error) {
	now := time.Now().UTC()

	// Stamped copies are persisted, not the caller's originals
	stamped := make([]models.VideoItem, len(items))
	for i, item := range items {
		item.StepID = stepID
		item.GeneratedAt = now
		stamped[i] = item
	}

	videoData, err := json.Marshal(stamped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode video data: %w", err)
	}

	if isRegenerate {
		return r.regenerate(ctx, roadmapID, level, stepID, videoData, stamped, now)
	}

	if pageNumber < 1 {
		pageNumber = 1
	}

	var maxGeneration int
	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(generation_number), 0)
		FROM user_videos
		WHERE user_roadmap_id = ? AND level = ? AND point_id = ? AND page_number = ?
	`, roadmapID, level, stepID, pageNumber).Scan(&maxGeneration)
	if err != nil {
		r.logger.Error("failed to query max generation", zap.Error(err))
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}

	generation := maxGeneration + 1
	id, err := r.insert(ctx, roadmapID, level, stepID, pageNumber, generation, videoData, now)
	if isDuplicateKey(err) {
		// Concurrent store computed the same next generation. Retry once
		// with a time-derived generation so the write is never lost; the
		// exact number is secondary to durability.
		generation = int(now.Unix())
		id, err = r.insert(ctx, roadmapID, level, stepID, pageNumber, generation, videoData, now)
	}
	if err != nil {
		r.logger.Error("failed to insert video record", zap.Error(err),
			zap.Int64("roadmap_id", roadmapID), zap.String("point_id", stepID))
		return nil, fmt.Errorf("failed to store videos: %w", err)
	}

	return &models.VideoRecord{
		ID:               id,
		UserRoadmapID:    roadmapID,
		Level:            level,
		PointID:          stepID,
		PageNumber:       pageNumber,
		GenerationNumber: generation,
		VideoData:        stamped,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// regenerate demotes every existing page for the step by one and inserts the
// fresh content at page 1 generation 1
func (r *videosRepository) regenerate(ctx context.Context, roadmapID int64, level models.Level, stepID string, videoData []byte, stamped []models.VideoItem, now time.Time) (*models.VideoRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Highest pages first, so the shift never trips the uniqueness constraint
	_, err = tx.ExecContext(ctx, `
		UPDATE user_videos
		SET page_number = page_number + 1, updated_at = ?
		WHERE user_roadmap_id = ? AND level = ? AND point_id = ?
		ORDER BY page_number DESC
	`, now, roadmapID, level, stepID)
	if err != nil {
		r.logger.Error("failed to demote video pages", zap.Error(err))
		return nil, fmt.Errorf("failed to demote pages: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO user_videos (user_roadmap_id, level, point_id, page_number, generation_number, video_data, created_at, updated_at)
		VALUES (?, ?, ?, 1, 1, ?, ?, ?)
	`, roadmapID, level, stepID, videoData, now, now)
	if err != nil {
		r.logger.Error("failed to insert regenerated videos", zap.Error(err))
		return nil, fmt.Errorf("failed to store regenerated videos: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit regeneration: %w", err)
	}

	id, _ := result.LastInsertId()
	return &models.VideoRecord{
		ID:               id,
		UserRoadmapID:    roadmapID,
		Level:            level,
		PointID:          stepID,
		PageNumber:       1,
		GenerationNumber: 1,
		VideoData:        stamped,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (r *videosRepository) insert(ctx context.Context, roadmapID int64, level models.Level, stepID string, pageNumber, generation int, videoData []byte, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO user_videos (user_roadmap_id, level, point_id, page_number, generation_number, video_data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, roadmapID, level, stepID, pageNumber, generation, videoData, now, now)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry violation
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// GetByStep returns the current (highest-generation) record for one step and
// page, or nil when the step has no stored videos. Steps are isolated by
// design: a step without videos never falls back to a sibling's content.
func (r *videosRepository) GetByStep(ctx context.Context, roadmapID int64, level models.Level, stepID string, pageNumber int) (*models.VideoRecord, error) {
	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM user_videos
		WHERE user_roadmap_id = ? AND level = ? AND point_id = ? AND page_number = ?
		ORDER BY generation_number DESC
		LIMIT 1
	`, videoColumns), roadmapID, level, stepID, pageNumber)

	record, err := scanVideoRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to query step videos", zap.Error(err),
			zap.Int64("roadmap_id", roadmapID), zap.String("point_id", stepID))
		return nil, fmt.Errorf("failed to query step videos: %w", err)
	}
	return record, nil
}

// List returns all records for a roadmap ordered by generation then recency.
// Level and page filters are applied when non-nil; an omitted filter is
// unconstrained.
func (r *videosRepository) List(ctx context.Context, roadmapID int64, level *models.Level, pageNumber *int) ([]models.VideoRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM user_videos WHERE user_roadmap_id = ?", videoColumns)
	args := []any{roadmapID}

	if level != nil {
		query += " AND level = ?"
		args = append(args, *level)
	}
	if pageNumber != nil {
		query += " AND page_number = ?"
		args = append(args, *pageNumber)
	}
	query += " ORDER BY generation_number DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query video records", zap.Error(err))
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	return collectVideoRecords(rows)
}

// GetLatestPerStep returns the highest-generation record for every step of a
// level and page, keyed by step ID
func (r *videosRepository) GetLatestPerStep(ctx context.Context, roadmapID int64, level models.Level, pageNumber int) (map[string]models.VideoRecord, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM user_videos
		WHERE user_roadmap_id = ? AND level = ? AND page_number = ?
		ORDER BY generation_number DESC
	`, videoColumns), roadmapID, level, pageNumber)
	if err != nil {
		r.logger.Error("failed to query level videos", zap.Error(err))
		return nil, fmt.Errorf("failed to query level videos: %w", err)
	}
	defer rows.Close()

	records, err := collectVideoRecords(rows)
	if err != nil {
		return nil, err
	}

	// Rows arrive generation-descending; the first row per step wins
	latest := make(map[string]models.VideoRecord, len(records))
	for _, record := range records {
		if _, ok := latest[record.PointID]; !ok {
			latest[record.PointID] = record
		}
	}
	return latest, nil
}

// StepIDs returns the distinct step identifiers that have stored videos for
// a roadmap level
func (r *videosRepository) StepIDs(ctx context.Context, roadmapID int64, level models.Level) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT point_id
		FROM user_videos
		WHERE user_roadmap_id = ? AND level = ?
	`, roadmapID, level)
	if err != nil {
		r.logger.Error("failed to query video step ids", zap.Error(err))
		return nil, fmt.Errorf("failed to query step ids: %w", err)
	}
	defer rows.Close()

	var stepIDs []string
	for rows.Next() {
		var stepID string
		if err := rows.Scan(&stepID); err != nil {
			return nil, fmt.Errorf("failed to scan step id: %w", err)
		}
		stepIDs = append(stepIDs, stepID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return stepIDs, nil
}

// DeleteByRoadmap removes every video record of a roadmap
func (r *videosRepository) DeleteByRoadmap(ctx context.Context, roadmapID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM user_videos WHERE user_roadmap_id = ?", roadmapID)
	if err != nil {
		r.logger.Error("failed to delete video records", zap.Error(err), zap.Int64("roadmap_id", roadmapID))
		return fmt.Errorf("failed to delete videos: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideoRecord(row rowScanner) (*models.VideoRecord, error) {
	var record models.VideoRecord
	var videoData []byte
	if err := row.Scan(
		&record.ID,
		&record.UserRoadmapID,
		&record.Level,
		&record.PointID,
		&record.PageNumber,
		&record.GenerationNumber,
		&videoData,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(videoData, &record.VideoData); err != nil {
		return nil, fmt.Errorf("invalid video data for record %d: %w", record.ID, err)
	}
	return &record, nil
}

func collectVideoRecords(rows *sql.Rows) ([]models.VideoRecord, error) {
	var records []models.VideoRecord
	for rows.Next() {
		record, err := scanVideoRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video record: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return records, nil
}

// MaxStepNumber parses the trailing integer of each stored step ID for the
// level and returns the maximum. Malformed IDs are skipped.
func (r *videosRepository) MaxStepNumber(ctx context.Context, roadmapID int64, level models.Level) (int, error) {
	stepIDs, err := r.StepIDs(ctx, roadmapID, level)
	if err != nil {
		return 0, err
	}

	maxStep := 0
	for _, stepID := range stepIDs {
		n, err := models.ParseStepNumber(strings.TrimSpace(stepID))
		if err != nil {
			continue
		}
		if n > maxStep {
			maxStep = n
		}
	}
	return maxStep, nil
}

package services

import (
	"context"
	"strings"

	"github.com/learntrail/backend/internal/apperrors"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

// ProgressRepository defines the progress storage operations the service needs
type ProgressRepository interface {
	Upsert(ctx context.Context, userID, roadmapID int64, pointID string, isCompleted bool) (*models.ProgressRecord, error)
	ListByRoadmap(ctx context.Context, userID, roadmapID int64) ([]models.ProgressRecord, error)
}

type progressService struct {
	progress ProgressRepository
	roadmaps RoadmapsRepository
	logger   *zap.Logger
}

// NewProgressService creates a new instance of the ProgressService interface
func NewProgressService(progress ProgressRepository, roadmaps RoadmapsRepository, logger *zap.Logger) *progressService {
	return &progressService{
		progress: progress,
		roadmaps: roadmaps,
		logger:   logger,
	}
}

// Update marks a roadmap step complete or incomplete for the user
func (s *progressService) Update(ctx context.Context, userID, roadmapID int64, req models.UpdateProgressRequest) (*models.ProgressRecord, error) {
	pointID := strings.TrimSpace(req.PointID)
	if pointID == "" {
		return nil, apperrors.InvalidRequest("pointId is required")
	}

	// The roadmap must exist; progress for arbitrary IDs would be orphaned
	if _, err := s.roadmaps.GetByID(ctx, roadmapID); err != nil {
		return nil, err
	}

	return s.progress.Upsert(ctx, userID, roadmapID, pointID, req.IsCompleted)
}

// List retrieves the user's completion state across one roadmap
func (s *progressService) List(ctx context.Context, userID, roadmapID int64) ([]models.ProgressRecord, error) {
	return s.progress.ListByRoadmap(ctx, userID, roadmapID)
}

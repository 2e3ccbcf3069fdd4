package services

import (
	"context"
	"errors"

	"github.com/learntrail/backend/internal/apperrors"
	"github.com/learntrail/backend/internal/clients/gemini"
	"github.com/learntrail/backend/internal/clients/videosearch"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

// VideosRepository defines the video storage operations the service needs
type VideosRepository interface {
	Store(ctx context.Context, roadmapID int64, level models.Level, stepID string, pageNumber int, items []models.VideoItem, isRegenerate bool) (*models.VideoRecord, error)
	GetByStep(ctx context.Context, roadmapID int64, level models.Level, stepID string, pageNumber int) (*models.VideoRecord, error)
	List(ctx context.Context, roadmapID int64, level *models.Level, pageNumber *int) ([]models.VideoRecord, error)
	GetLatestPerStep(ctx context.Context, roadmapID int64, level models.Level, pageNumber int) (map[string]models.VideoRecord, error)
	DeleteByRoadmap(ctx context.Context, roadmapID int64) error
	MaxStepNumber(ctx context.Context, roadmapID int64, level models.Level) (int, error)
}

// TitleGenerator defines the search-title generation the service needs
type TitleGenerator interface {
	GenerateVideoTitles(ctx context.Context, pointTitle, topic string, prefs gemini.Preferences) ([]string, error)
}

// VideoSearcher defines the external video search the service needs
type VideoSearcher interface {
	Search(ctx context.Context, queryTitle string, excludedIDs []string, minDurationMinutes int) (*models.VideoItem, error)
}

type videoService struct {
	videos    VideosRepository
	roadmaps  RoadmapsRepository
	generator TitleGenerator
	search    VideoSearcher
	fallback  func(queryTitle string, excludedVideoIDs []string) models.VideoItem
	logger    *zap.Logger
}

// NewVideoService creates a new instance of the VideoService interface
func NewVideoService(videos VideosRepository, roadmaps RoadmapsRepository, generator TitleGenerator, search VideoSearcher, logger *zap.Logger) *videoService {
	return &videoService{
		videos:    videos,
		roadmaps:  roadmaps,
		generator: generator,
		search:    search,
		fallback:  videosearch.SelectFallback,
		logger:    logger,
	}
}

// GetPlaylist returns the current video set for one step and page, generating
// and storing one when nothing is stored yet. A step with no stored videos
// never serves a sibling step's content.
func (s *videoService) GetPlaylist(ctx context.Context, roadmapID int64, level models.Level, stepID string, pageNumber int, prefs gemini.Preferences) (*models.VideoRecord, error) {
	if !level.Valid() {
		return nil, apperrors.InvalidRequest("unknown level")
	}
	if pageNumber < 1 {
		pageNumber = 1
	}

	record, err := s.videos.GetByStep(ctx, roadmapID, level, stepID, pageNumber)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	items, err := s.generateItems(ctx, roadmapID, level, stepID, prefs)
	if err != nil {
		return nil, err
	}

	return s.videos.Store(ctx, roadmapID, level, stepID, pageNumber, items, false)
}

// Regenerate produces a fresh video set for the step and makes it the new
// page 1; the previous pages shift down by one
func (s *videoService) Regenerate(ctx context.Context, roadmapID int64, level models.Level, stepID string, prefs gemini.Preferences) (*models.VideoRecord, error) {
	if !level.Valid() {
		return nil, apperrors.InvalidRequest("unknown level")
	}

	items, err := s.generateItems(ctx, roadmapID, level, stepID, prefs)
	if err != nil {
		return nil, err
	}

	record, err := s.videos.Store(ctx, roadmapID, level, stepID, 0, items, true)
	if err != nil {
		return nil, err
	}

	s.logger.Info("regenerated step videos",
		zap.Int64("roadmap_id", roadmapID),
		zap.String("level", string(level)),
		zap.String("point_id", stepID))
	return record, nil
}

// GetLevelPlaylists returns the current video set of every step on one level
// and page, keyed by step ID
func (s *videoService) GetLevelPlaylists(ctx context.Context, roadmapID int64, level models.Level, pageNumber int) (map[string]models.VideoRecord, error) {
	if !level.Valid() {
		return nil, apperrors.InvalidRequest("unknown level")
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	return s.videos.GetLatestPerStep(ctx, roadmapID, level, pageNumber)
}

// List returns all stored records for a roadmap with optional level and page
// filters
func (s *videoService) List(ctx context.Context, roadmapID int64, level *models.Level, pageNumber *int) ([]models.VideoRecord, error) {
	if level != nil && !level.Valid() {
		return nil, apperrors.InvalidRequest("unknown level")
	}
	return s.videos.List(ctx, roadmapID, level, pageNumber)
}

// NextStepNumber allocates the ordinal for appending a step outside the
// normal roadmap flow. The candidate is one past the highest stored step
// number, clamped so allocation never exceeds the roadmap's defined steps by
// more than one. Any lookup or parse failure defaults to step 1.
func (s *videoService) NextStepNumber(ctx context.Context, roadmapID int64, level models.Level) int {
	roadmap, err := s.roadmaps.GetByID(ctx, roadmapID)
	if err != nil {
		s.logger.Warn("step allocation falling back to 1", zap.Error(err), zap.Int64("roadmap_id", roadmapID))
		return 1
	}
	roadmap.Data.Normalize()

	value := roadmap.Data.Level(level)
	if value == nil {
		return 1
	}
	stepCount := value.StepCount()

	maxStored, err := s.videos.MaxStepNumber(ctx, roadmapID, level)
	if err != nil {
		s.logger.Warn("step allocation falling back to 1", zap.Error(err), zap.Int64("roadmap_id", roadmapID))
		return 1
	}

	candidate := maxStored + 1
	if candidate > stepCount+1 {
		candidate = stepCount + 1
	}
	if candidate < 1 {
		candidate = 1
	}
	return candidate
}

// generateItems builds a fresh playlist for the step: generated search titles,
// one search per title with accumulated exclusions, and the curated fallback
// once the search quota is exhausted
func (s *videoService) generateItems(ctx context.Context, roadmapID int64, level models.Level, stepID string, prefs gemini.Preferences) ([]models.VideoItem, error) {
	roadmap, err := s.roadmaps.GetByID(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	if roadmap.Data.Normalize() {
		if err := s.roadmaps.UpdateData(ctx, roadmap.ID, roadmap.Data); err != nil {
			s.logger.Warn("failed to persist normalized roadmap", zap.Error(err), zap.Int64("roadmap_id", roadmapID))
		}
	}

	value := roadmap.Data.Level(level)
	if value == nil {
		return nil, apperrors.InvalidRequest("unknown level")
	}
	step, ok := value.Steps[stepID]
	if !ok {
		return nil, apperrors.NotFound("step not found in roadmap")
	}

	titles, err := s.generator.GenerateVideoTitles(ctx, step.PointTitle, roadmap.Topic, prefs)
	if err != nil {
		s.logger.Error("title generation failed", zap.Error(err), zap.String("point_id", stepID))
		return nil, apperrors.Wrap(apperrors.CodeUpstream, "video title generation failed", err)
	}

	excluded, err := s.usedVideoIDs(ctx, roadmapID, level)
	if err != nil {
		return nil, err
	}

	minDuration := minDurationForPreference(prefs.VideoLength)

	var items []models.VideoItem
	quotaExhausted := false
	for _, title := range titles {
		if quotaExhausted {
			item := s.fallback(title, excluded)
			items = append(items, item)
			excluded = append(excluded, item.ID)
			continue
		}

		item, err := s.search.Search(ctx, title, excluded, minDuration)
		if errors.Is(err, videosearch.ErrQuotaExceeded) {
			quotaExhausted = true
			fb := s.fallback(title, excluded)
			items = append(items, fb)
			excluded = append(excluded, fb.ID)
			continue
		}
		if err != nil {
			s.logger.Warn("video search failed for title", zap.Error(err), zap.String("title", title))
			continue
		}
		if item == nil {
			continue
		}
		items = append(items, *item)
		excluded = append(excluded, item.ID)
	}

	if len(items) == 0 {
		return nil, apperrors.New(apperrors.CodeUpstream, "no suitable videos found")
	}
	return items, nil
}

// usedVideoIDs collects every video ID already stored for the roadmap level,
// so fresh playlists never repeat content
func (s *videoService) usedVideoIDs(ctx context.Context, roadmapID int64, level models.Level) ([]string, error) {
	records, err := s.videos.List(ctx, roadmapID, &level, nil)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, record := range records {
		for _, item := range record.VideoData {
			ids = append(ids, item.ID)
		}
	}
	return ids, nil
}

// minDurationForPreference maps the user's length preference to a minimum
// video duration in minutes
func minDurationForPreference(videoLength string) int {
	switch videoLength {
	case "long":
		return 30
	case "medium":
		return 10
	default:
		return 0
	}
}

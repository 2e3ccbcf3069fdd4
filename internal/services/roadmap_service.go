// Package services holds the business logic between handlers and
// repositories.
package services

import (
	"context"
	"strings"

	"github.com/learntrail/backend/internal/apperrors"
	"github.com/learntrail/backend/internal/clients/gemini"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

// RoadmapsRepository defines the roadmap storage operations the services need
type RoadmapsRepository interface {
	Create(ctx context.Context, userID, topicID int64, topic string, data models.RoadmapLevels) (*models.UserRoadmap, error)
	GetByID(ctx context.Context, id int64) (*models.UserRoadmap, error)
	UpdateData(ctx context.Context, id int64, data models.RoadmapLevels) error
	ListByUser(ctx context.Context, userID int64) ([]models.UserRoadmap, error)
	Delete(ctx context.Context, id int64) error
}

// RoadmapGenerator defines the content generation the roadmap service needs
type RoadmapGenerator interface {
	GenerateRoadmap(ctx context.Context, topic string, prefs gemini.Preferences) (*models.GeneratedRoadmap, error)
}

// TopicsRepository records the free-text topics users submit
type TopicsRepository interface {
	CreateTopic(ctx context.Context, userID int64, topic string) (*models.UserTopic, error)
}

type roadmapService struct {
	roadmaps  RoadmapsRepository
	topics    TopicsRepository
	generator RoadmapGenerator
	logger    *zap.Logger
}

// NewRoadmapService creates a new instance of the RoadmapService interface
func NewRoadmapService(roadmaps RoadmapsRepository, topics TopicsRepository, generator RoadmapGenerator, logger *zap.Logger) *roadmapService {
	return &roadmapService{
		roadmaps:  roadmaps,
		topics:    topics,
		generator: generator,
		logger:    logger,
	}
}

// Generate records the submitted topic, asks the content generator for a
// roadmap and persists it in normalized form
func (s *roadmapService) Generate(ctx context.Context, userID int64, req models.GenerateRoadmapRequest) (*models.UserRoadmap, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, apperrors.InvalidRequest("topic is required")
	}

	userTopic, err := s.topics.CreateTopic(ctx, userID, topic)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateRoadmap(ctx, topic, gemini.Preferences{
		Depth:       req.DepthPreference,
		VideoLength: req.VideoLengthPreference,
	})
	if err != nil {
		s.logger.Error("roadmap generation failed", zap.Error(err), zap.String("topic", topic))
		return nil, apperrors.Wrap(apperrors.CodeUpstream, "roadmap generation failed", err)
	}

	// New roadmaps are stored normalized from the start; the legacy array
	// shape only exists in rows written before the migration
	data := models.RoadmapLevels{
		Beginner:     models.LevelValue{Legacy: generated.Roadmap.Beginner},
		Intermediate: models.LevelValue{Legacy: generated.Roadmap.Intermediate},
		Advanced:     models.LevelValue{Legacy: generated.Roadmap.Advanced},
	}
	data.Normalize()

	roadmap, err := s.roadmaps.Create(ctx, userID, userTopic.ID, generated.ExtractedTopic, data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("roadmap generated",
		zap.Int64("roadmap_id", roadmap.ID),
		zap.Int64("user_id", userID),
		zap.String("topic", generated.ExtractedTopic))
	return roadmap, nil
}

// Get retrieves a roadmap in normalized form. Legacy-shaped rows are migrated
// and the migrated representation is written back.
func (s *roadmapService) Get(ctx context.Context, id int64) (*models.UserRoadmap, error) {
	roadmap, err := s.roadmaps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if roadmap.Data.Normalize() {
		if err := s.roadmaps.UpdateData(ctx, roadmap.ID, roadmap.Data); err != nil {
			// Serve the normalized view regardless; the rewrite retries on
			// the next read
			s.logger.Warn("failed to persist normalized roadmap", zap.Error(err), zap.Int64("roadmap_id", id))
		} else {
			s.logger.Info("migrated legacy roadmap data", zap.Int64("roadmap_id", id))
		}
	}

	return roadmap, nil
}

// ListByUser retrieves a user's roadmaps without forcing migration
func (s *roadmapService) ListByUser(ctx context.Context, userID int64) ([]models.UserRoadmap, error) {
	return s.roadmaps.ListByUser(ctx, userID)
}

// Delete removes a roadmap and everything hanging off it
func (s *roadmapService) Delete(ctx context.Context, id int64) error {
	return s.roadmaps.Delete(ctx, id)
}

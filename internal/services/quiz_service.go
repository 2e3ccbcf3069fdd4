package services

import (
	"context"
	"time"

	"github.com/learntrail/backend/internal/apperrors"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

// QuizzesRepository defines the quiz storage operations the service needs
type QuizzesRepository interface {
	Create(ctx context.Context, userID, roadmapID int64, questions []models.QuizQuestion, metadata models.QuizMetadata) (*models.UserQuiz, error)
	GetByID(ctx context.Context, id int64) (*models.UserQuiz, error)
	ListQuestionTexts(ctx context.Context, roadmapID int64) ([]string, error)
	RecordAttempt(ctx context.Context, quizID, userID int64, score, totalQuestions int) (*models.QuizAttempt, error)
	ListAttempts(ctx context.Context, quizID int64) ([]models.QuizAttempt, error)
}

// QuizGenerator defines the content generation the quiz service needs
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, roadmap *models.UserRoadmap, usedQuestions []string) ([]models.QuizQuestion, error)
}

type quizService struct {
	quizzes   QuizzesRepository
	roadmaps  RoadmapsRepository
	generator QuizGenerator
	logger    *zap.Logger
}

// NewQuizService creates a new instance of the QuizService interface
func NewQuizService(quizzes QuizzesRepository, roadmaps RoadmapsRepository, generator QuizGenerator, logger *zap.Logger) *quizService {
	return &quizService{
		quizzes:   quizzes,
		roadmaps:  roadmaps,
		generator: generator,
		logger:    logger,
	}
}

// Generate produces and persists a quiz over the roadmap's structure,
// avoiding question texts used by the roadmap's earlier quizzes
func (s *quizService) Generate(ctx context.Context, userID, roadmapID int64) (*models.UserQuiz, error) {
	roadmap, err := s.roadmaps.GetByID(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	if roadmap.Data.Normalize() {
		if err := s.roadmaps.UpdateData(ctx, roadmap.ID, roadmap.Data); err != nil {
			s.logger.Warn("failed to persist normalized roadmap", zap.Error(err), zap.Int64("roadmap_id", roadmapID))
		}
	}

	usedQuestions, err := s.quizzes.ListQuestionTexts(ctx, roadmapID)
	if err != nil {
		return nil, err
	}

	questions, err := s.generator.GenerateQuiz(ctx, roadmap, usedQuestions)
	if err != nil {
		s.logger.Error("quiz generation failed", zap.Error(err), zap.Int64("roadmap_id", roadmapID))
		return nil, apperrors.Wrap(apperrors.CodeUpstream, "quiz generation failed", err)
	}

	metadata := models.QuizMetadata{
		Topic:         roadmap.Topic,
		QuestionCount: len(questions),
		GeneratedAt:   time.Now().UTC(),
	}

	return s.quizzes.Create(ctx, userID, roadmapID, questions, metadata)
}

// Get retrieves a quiz with its questions
func (s *quizService) Get(ctx context.Context, id int64) (*models.UserQuiz, error) {
	return s.quizzes.GetByID(ctx, id)
}

// RecordAttempt stores one completed quiz run after validating the score
func (s *quizService) RecordAttempt(ctx context.Context, quizID, userID int64, req models.RecordAttemptRequest) (*models.QuizAttempt, error) {
	if req.TotalQuestions <= 0 {
		return nil, apperrors.InvalidRequest("totalQuestions must be positive")
	}
	if req.Score < 0 || req.Score > req.TotalQuestions {
		return nil, apperrors.InvalidRequest("score must be between 0 and totalQuestions")
	}

	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		return nil, err
	}

	return s.quizzes.RecordAttempt(ctx, quizID, userID, req.Score, req.TotalQuestions)
}

// ListAttempts retrieves all attempts for a quiz
func (s *quizService) ListAttempts(ctx context.Context, quizID int64) ([]models.QuizAttempt, error) {
	return s.quizzes.ListAttempts(ctx, quizID)
}

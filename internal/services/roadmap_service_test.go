package services

import (
	"context"
	"errors"
	"testing"

	"github.com/learntrail/backend/internal/apperrors"
	"github.com/learntrail/backend/internal/clients/gemini"
	"github.com/learntrail/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockTopicsRepository is a mock implementation of TopicsRepository
type mockTopicsRepository struct {
	err       error
	lastTopic string
}

func (m *mockTopicsRepository) CreateTopic(ctx context.Context, userID int64, topic string) (*models.UserTopic, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastTopic = topic
	return &models.UserTopic{ID: 42, UserID: userID, Topic: topic}, nil
}

// mockRoadmapGenerator is a mock implementation of RoadmapGenerator
type mockRoadmapGenerator struct {
	generated *models.GeneratedRoadmap
	err       error
}

func (m *mockRoadmapGenerator) GenerateRoadmap(ctx context.Context, topic string, prefs gemini.Preferences) (*models.GeneratedRoadmap, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.generated, nil
}

func generatedFixture() *models.GeneratedRoadmap {
	generated := &models.GeneratedRoadmap{ExtractedTopic: "react"}
	generated.Roadmap.Beginner = []string{"Syntax", "Components"}
	generated.Roadmap.Intermediate = []string{"Hooks"}
	generated.Roadmap.Advanced = []string{"Internals"}
	return generated
}

func newTestRoadmapService(roadmaps *mockRoadmapsRepository, topics *mockTopicsRepository, generator *mockRoadmapGenerator) *roadmapService {
	logger, _ := zap.NewDevelopment()
	return NewRoadmapService(roadmaps, topics, generator, logger)
}

func TestRoadmapService_Generate(t *testing.T) {
	tests := []struct {
		name          string
		topic         string
		topicsErr     error
		generatorErr  error
		expectedError bool
		expectedCode  string
	}{
		{
			name:  "success",
			topic: "learn react from scratch",
		},
		{
			name:          "empty topic rejected",
			topic:         "   ",
			expectedError: true,
			expectedCode:  apperrors.CodeInvalidRequest,
		},
		{
			name:          "generator failure is upstream error",
			topic:         "learn react",
			generatorErr:  errors.New("model overloaded"),
			expectedError: true,
			expectedCode:  apperrors.CodeUpstream,
		},
		{
			name:          "topic persistence failure",
			topic:         "learn react",
			topicsErr:     errors.New("database error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roadmaps := &mockRoadmapsRepository{}
			topics := &mockTopicsRepository{err: tt.topicsErr}
			generator := &mockRoadmapGenerator{generated: generatedFixture(), err: tt.generatorErr}
			svc := newTestRoadmapService(roadmaps, topics, generator)

			roadmap, err := svc.Generate(context.Background(), 1, models.GenerateRoadmapRequest{Topic: tt.topic})

			if tt.expectedError {
				require.Error(t, err)
				if tt.expectedCode != "" {
					assert.Equal(t, tt.expectedCode, apperrors.From(err).Code)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "react", roadmap.Topic)
			assert.Equal(t, "learn react from scratch", topics.lastTopic)

			// Persisted form is already normalized
			assert.True(t, roadmap.Data.Beginner.Normalized())
			assert.Equal(t, 2, roadmap.Data.Beginner.StepCount())
			assert.Equal(t, "Syntax", roadmap.Data.Beginner.Steps["step_1"].PointTitle)
		})
	}
}

func TestRoadmapService_Get_MigratesLegacyRows(t *testing.T) {
	legacy := &models.UserRoadmap{
		ID:   7,
		Data: models.RoadmapLevels{Beginner: models.LevelValue{Legacy: []string{"Syntax", "Loops"}}},
	}
	roadmaps := &mockRoadmapsRepository{roadmap: legacy}
	svc := newTestRoadmapService(roadmaps, &mockTopicsRepository{}, &mockRoadmapGenerator{})

	roadmap, err := svc.Get(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, roadmap.Data.Beginner.Normalized())
	// The migrated representation was written back
	require.NotNil(t, roadmaps.updatedData)
	assert.True(t, roadmaps.updatedData.Beginner.Normalized())
}

func TestRoadmapService_Get_NormalizedRowsAreNotRewritten(t *testing.T) {
	data := models.RoadmapLevels{Beginner: models.LevelValue{Legacy: []string{"Syntax"}}}
	data.Normalize()
	roadmaps := &mockRoadmapsRepository{roadmap: &models.UserRoadmap{ID: 7, Data: data}}
	svc := newTestRoadmapService(roadmaps, &mockTopicsRepository{}, &mockRoadmapGenerator{})

	_, err := svc.Get(context.Background(), 7)

	require.NoError(t, err)
	assert.Nil(t, roadmaps.updatedData)
}

func TestRoadmapService_Get_ServesNormalizedEvenWhenRewriteFails(t *testing.T) {
	legacy := &models.UserRoadmap{
		ID:   7,
		Data: models.RoadmapLevels{Beginner: models.LevelValue{Legacy: []string{"Syntax"}}},
	}
	roadmaps := &mockRoadmapsRepository{roadmap: legacy, updateErr: errors.New("database error")}
	svc := newTestRoadmapService(roadmaps, &mockTopicsRepository{}, &mockRoadmapGenerator{})

	roadmap, err := svc.Get(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, roadmap.Data.Beginner.Normalized())
}

func TestRoadmapService_Get_NotFound(t *testing.T) {
	roadmaps := &mockRoadmapsRepository{getErr: apperrors.NotFound("roadmap not found")}
	svc := newTestRoadmapService(roadmaps, &mockTopicsRepository{}, &mockRoadmapGenerator{})

	_, err := svc.Get(context.Background(), 7)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.From(err).Code)
}

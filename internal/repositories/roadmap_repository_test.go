package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/learntrail/backend/internal/apperrors"
	"github.com/learntrail/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupRoadmapsRepository creates a roadmap repository with a mock database
func setupRoadmapsRepository(t *testing.T) (*roadmapsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	repo := NewRoadmapsRepository(db, logger)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

var selectRoadmapQuery = regexp.QuoteMeta("SELECT id, user_id, topic_id, topic, roadmap_data, created_at, updated_at FROM user_roadmaps")

func TestRoadmapsRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupRoadmapsRepository(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roadmaps")).
		WithArgs(int64(1), int64(42), "react", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	data := models.RoadmapLevels{Beginner: models.LevelValue{Legacy: []string{"Syntax"}}}
	data.Normalize()

	roadmap, err := repo.Create(context.Background(), 1, 42, "react", data)
	require.NoError(t, err)
	assert.Equal(t, int64(7), roadmap.ID)
	assert.Equal(t, "react", roadmap.Topic)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoadmapsRepository_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		roadmapData   string
		setupMock     func(sqlmock.Sqlmock, string)
		expectedError bool
		notFound      bool
		checkData     func(*testing.T, *models.UserRoadmap)
	}{
		{
			name:        "legacy array-shaped row loads",
			roadmapData: `{"beginner":["Syntax","Loops"],"intermediate":[],"advanced":[]}`,
			checkData: func(t *testing.T, roadmap *models.UserRoadmap) {
				assert.False(t, roadmap.Data.Beginner.Normalized())
				assert.Equal(t, []string{"Syntax", "Loops"}, roadmap.Data.Beginner.Legacy)
			},
		},
		{
			name:        "normalized step-map row loads",
			roadmapData: `{"beginner":{"step_1":{"pointId":"step_1","pointTitle":"Syntax","title":"Syntax"}},"intermediate":null,"advanced":null}`,
			checkData: func(t *testing.T, roadmap *models.UserRoadmap) {
				assert.True(t, roadmap.Data.Beginner.Normalized())
				assert.Equal(t, "Syntax", roadmap.Data.Beginner.Steps["step_1"].PointTitle)
			},
		},
		{
			name:          "malformed roadmap data",
			roadmapData:   `{"beginner":42}`,
			expectedError: true,
		},
		{
			name:          "not found",
			notFound:      true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRoadmapsRepository(t)
			defer cleanup()

			if tt.notFound {
				mock.ExpectQuery(selectRoadmapQuery).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			} else {
				rows := sqlmock.NewRows([]string{"id", "user_id", "topic_id", "topic", "roadmap_data", "created_at", "updated_at"}).
					AddRow(7, 1, 42, "react", tt.roadmapData, time.Now(), time.Now())
				mock.ExpectQuery(selectRoadmapQuery).
					WithArgs(int64(7)).
					WillReturnRows(rows)
			}

			roadmap, err := repo.GetByID(context.Background(), 7)

			if tt.expectedError {
				require.Error(t, err)
				if tt.notFound {
					assert.Equal(t, apperrors.CodeNotFound, apperrors.From(err).Code)
				}
				return
			}
			require.NoError(t, err)
			tt.checkData(t, roadmap)
		})
	}
}

func TestRoadmapsRepository_UpdateData(t *testing.T) {
	repo, mock, cleanup := setupRoadmapsRepository(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE user_roadmaps")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	data := models.RoadmapLevels{Beginner: models.LevelValue{Legacy: []string{"Syntax"}}}
	data.Normalize()

	err := repo.UpdateData(context.Background(), 7, data)
	assert.NoError(t, err)
}

func TestRoadmapsRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		notFound      bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_roadmaps WHERE id = ?")).
					WithArgs(int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing roadmap is not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_roadmaps WHERE id = ?")).
					WithArgs(int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			notFound:      true,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_roadmaps WHERE id = ?")).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRoadmapsRepository(t)
			defer cleanup()
			tt.setupMock(mock)

			err := repo.Delete(context.Background(), 7)

			if tt.expectedError {
				require.Error(t, err)
				if tt.notFound {
					assert.Equal(t, apperrors.CodeNotFound, apperrors.From(err).Code)
				}
				return
			}
			assert.NoError(t, err)
		})
	}
}

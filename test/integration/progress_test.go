package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/learntrail/backend/internal/config"
	"github.com/learntrail/backend/internal/handlers"
	"github.com/learntrail/backend/internal/models"
	"github.com/learntrail/backend/internal/repositories"
	"github.com/learntrail/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testDB     *sql.DB
	testRouter chi.Router
	testLogger *zap.Logger
)

const (
	seedUserID           = int64(1)
	seedLegacyRoadmapID  = int64(1)
	seedStepMapRoadmapID = int64(2)
)

// seedTestData inserts a user, a topic and two roadmaps: one stored in the
// legacy array shape and one already in the step-map shape
func seedTestData(t *testing.T, db *sql.DB) {
	t.Helper()

	// Clear existing data, children first because of foreign keys
	for _, table := range []string{"roadmap_progress", "user_roadmaps", "user_topics", "users"} {
		_, err := db.Exec("DELETE FROM " + table)
		require.NoError(t, err, "Failed to clear test data")
		_, err = db.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1")
		require.NoError(t, err, "Failed to reset AUTO_INCREMENT")
	}

	_, err := db.Exec(`INSERT INTO users (id, email, name) VALUES (1, 'learner@example.com', 'Learner')`)
	require.NoError(t, err, "Failed to seed user")

	_, err = db.Exec(`INSERT INTO user_topics (id, user_id, topic) VALUES (1, 1, 'learn react from scratch')`)
	require.NoError(t, err, "Failed to seed topic")

	legacyData := `{"beginner":["Syntax","Components","State"],"intermediate":["Hooks"],"advanced":[]}`
	stepMapData := `{
		"beginner":{
			"step_1":{"pointId":"step_1","pointTitle":"Syntax","title":"Syntax"},
			"step_2":{"pointId":"step_2","pointTitle":"Components","title":"Components"}
		},
		"intermediate":null,
		"advanced":null
	}`

	_, err = db.Exec(`INSERT INTO user_roadmaps (id, user_id, topic_id, topic, roadmap_data) VALUES (1, 1, 1, 'react', ?)`, legacyData)
	require.NoError(t, err, "Failed to seed legacy roadmap")

	_, err = db.Exec(`INSERT INTO user_roadmaps (id, user_id, topic_id, topic, roadmap_data) VALUES (2, 1, 1, 'react', ?)`, stepMapData)
	require.NoError(t, err, "Failed to seed step-map roadmap")
}

// cleanupTestData removes all test data
func cleanupTestData(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, table := range []string{"roadmap_progress", "user_roadmaps", "user_topics", "users"} {
		_, err := db.Exec("DELETE FROM " + table)
		require.NoError(t, err, "Failed to cleanup test data")
	}
}

// setupTestRouter creates a test router with the progress handler
func setupTestRouter(db *sql.DB, logger *zap.Logger) chi.Router {
	roadmapsRepo := repositories.NewRoadmapsRepository(db, logger)
	progressRepo := repositories.NewProgressRepository(db, logger)
	svc := services.NewProgressService(progressRepo, roadmapsRepo, logger)
	progressHandler := handlers.NewProgressHandler(svc, logger, true)

	r := chi.NewRouter()
	progressHandler.RegisterRoutes(r)

	return r
}

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	// Initialize logger
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Setup test database
	cfg, err := config.LoadTestConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load test config: %v", err))
	}
	dsn := cfg.DSN()
	if cfg.Database.Host == "" {
		// Default test database connection
		dsn = "root:password@tcp(localhost:3306)/learntrail_test?parseTime=true&charset=utf8mb4"
	}

	testDB, err = sql.Open("mysql", dsn)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}

	// Test connection
	if err = testDB.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to ping test database: %v", err))
	}

	// Setup test schema
	setupTestSchemaForMain(testDB)

	// Setup test router
	testRouter = setupTestRouter(testDB, testLogger)

	// Run tests
	code := m.Run()

	// Cleanup
	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

// setupTestSchemaForMain creates the test database schema (for TestMain)
func setupTestSchemaForMain(db *sql.DB) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
		`CREATE TABLE IF NOT EXISTS user_topics (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			topic TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_user_topics_user (user_id),
			CONSTRAINT fk_user_topics_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
		`CREATE TABLE IF NOT EXISTS user_roadmaps (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			topic_id BIGINT NOT NULL,
			topic VARCHAR(512) NOT NULL,
			roadmap_data JSON NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			KEY idx_user_roadmaps_user (user_id),
			CONSTRAINT fk_user_roadmaps_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			CONSTRAINT fk_user_roadmaps_topic FOREIGN KEY (topic_id) REFERENCES user_topics(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
		`CREATE TABLE IF NOT EXISTS roadmap_progress (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			roadmap_id BIGINT NOT NULL,
			point_id VARCHAR(64) NOT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			completed_at TIMESTAMP NULL DEFAULT NULL,
			UNIQUE KEY uq_roadmap_progress_key (user_id, roadmap_id, point_id),
			CONSTRAINT fk_roadmap_progress_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			CONSTRAINT fk_roadmap_progress_roadmap FOREIGN KEY (roadmap_id) REFERENCES user_roadmaps(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
	}

	for _, query := range queries {
		db.Exec(query)
	}
}

func doProgressRequest(t *testing.T, method, path string, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func TestIntegration_UpdateProgress(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	seedTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	tests := []struct {
		name           string
		path           string
		userID         string
		body           any
		expectedStatus int
		validateFunc   func(*testing.T, *models.ProgressRecord)
	}{
		{
			name:           "mark step complete",
			path:           "/api/v1/roadmaps/2/progress",
			userID:         "1",
			body:           models.UpdateProgressRequest{PointID: "step_1", IsCompleted: true},
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, record *models.ProgressRecord) {
				assert.Equal(t, "step_1", record.PointID)
				assert.True(t, record.IsCompleted)
				assert.NotNil(t, record.CompletedAt)
			},
		},
		{
			name:           "mark step incomplete",
			path:           "/api/v1/roadmaps/2/progress",
			userID:         "1",
			body:           models.UpdateProgressRequest{PointID: "step_1", IsCompleted: false},
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, record *models.ProgressRecord) {
				assert.False(t, record.IsCompleted)
				assert.Nil(t, record.CompletedAt)
			},
		},
		{
			name:           "missing user header",
			path:           "/api/v1/roadmaps/2/progress",
			userID:         "",
			body:           models.UpdateProgressRequest{PointID: "step_1", IsCompleted: true},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty point id",
			path:           "/api/v1/roadmaps/2/progress",
			userID:         "1",
			body:           models.UpdateProgressRequest{PointID: "  ", IsCompleted: true},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown roadmap",
			path:           "/api/v1/roadmaps/999/progress",
			userID:         "1",
			body:           models.UpdateProgressRequest{PointID: "step_1", IsCompleted: true},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doProgressRequest(t, http.MethodPut, tt.path, tt.userID, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK && tt.validateFunc != nil {
				var record models.ProgressRecord
				err := json.NewDecoder(w.Body).Decode(&record)
				require.NoError(t, err)
				tt.validateFunc(t, &record)
			}
		})
	}

	// The same (user, roadmap, point) key was written twice; upsert keeps one row
	var count int
	err := testDB.QueryRow(`SELECT COUNT(*) FROM roadmap_progress WHERE user_id = 1 AND roadmap_id = 2`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIntegration_ListProgress(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	seedTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	for _, point := range []string{"step_2", "step_1"} {
		w := doProgressRequest(t, http.MethodPut, "/api/v1/roadmaps/2/progress", "1",
			models.UpdateProgressRequest{PointID: point, IsCompleted: true})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doProgressRequest(t, http.MethodGet, "/api/v1/roadmaps/2/progress", "1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var records []models.ProgressRecord
	err := json.NewDecoder(w.Body).Decode(&records)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Records come back ordered by point id
	assert.Equal(t, "step_1", records[0].PointID)
	assert.Equal(t, "step_2", records[1].PointID)

	t.Run("other user sees nothing", func(t *testing.T) {
		w := doProgressRequest(t, http.MethodGet, "/api/v1/roadmaps/2/progress", "42", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var records []models.ProgressRecord
		err := json.NewDecoder(w.Body).Decode(&records)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestIntegration_RepositoryLayer(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	seedTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	logger, _ := zap.NewDevelopment()
	roadmapsRepo := repositories.NewRoadmapsRepository(testDB, logger)
	progressRepo := repositories.NewProgressRepository(testDB, logger)
	ctx := context.Background()

	t.Run("legacy roadmap row loads in legacy shape", func(t *testing.T) {
		roadmap, err := roadmapsRepo.GetByID(ctx, seedLegacyRoadmapID)
		require.NoError(t, err)
		assert.False(t, roadmap.Data.Beginner.Normalized())
		assert.Equal(t, []string{"Syntax", "Components", "State"}, roadmap.Data.Beginner.Legacy)
	})

	t.Run("step-map roadmap row loads normalized", func(t *testing.T) {
		roadmap, err := roadmapsRepo.GetByID(ctx, seedStepMapRoadmapID)
		require.NoError(t, err)
		assert.True(t, roadmap.Data.Beginner.Normalized())
		assert.Equal(t, 2, roadmap.Data.Beginner.StepCount())
	})

	t.Run("UpdateData rewrites stored shape", func(t *testing.T) {
		roadmap, err := roadmapsRepo.GetByID(ctx, seedLegacyRoadmapID)
		require.NoError(t, err)

		data := roadmap.Data
		require.True(t, data.Normalize())
		require.NoError(t, roadmapsRepo.UpdateData(ctx, seedLegacyRoadmapID, data))

		reloaded, err := roadmapsRepo.GetByID(ctx, seedLegacyRoadmapID)
		require.NoError(t, err)
		assert.True(t, reloaded.Data.Beginner.Normalized())
		assert.Equal(t, "Syntax", reloaded.Data.Beginner.Steps["step_1"].PointTitle)
	})

	t.Run("Upsert is idempotent per key", func(t *testing.T) {
		_, err := progressRepo.Upsert(ctx, seedUserID, seedStepMapRoadmapID, "step_1", true)
		require.NoError(t, err)
		_, err = progressRepo.Upsert(ctx, seedUserID, seedStepMapRoadmapID, "step_1", false)
		require.NoError(t, err)

		records, err := progressRepo.ListByRoadmap(ctx, seedUserID, seedStepMapRoadmapID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.False(t, records[0].IsCompleted)
		assert.Nil(t, records[0].CompletedAt)
	})
}

func TestIntegration_ServiceLayer(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	seedTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	logger, _ := zap.NewDevelopment()
	roadmapsRepo := repositories.NewRoadmapsRepository(testDB, logger)
	progressRepo := repositories.NewProgressRepository(testDB, logger)
	svc := services.NewProgressService(progressRepo, roadmapsRepo, logger)
	ctx := context.Background()

	t.Run("Update", func(t *testing.T) {
		record, err := svc.Update(ctx, seedUserID, seedStepMapRoadmapID, models.UpdateProgressRequest{
			PointID:     "step_2",
			IsCompleted: true,
		})
		require.NoError(t, err)
		assert.True(t, record.IsCompleted)
	})

	t.Run("List", func(t *testing.T) {
		records, err := svc.List(ctx, seedUserID, seedStepMapRoadmapID)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

// Benchmark tests
func BenchmarkIntegration_ListProgress(b *testing.B) {
	if testing.Short() {
		b.Skip("Skipping benchmarks in short mode")
	}

	seedTestData(&testing.T{}, testDB)
	defer cleanupTestData(&testing.T{}, testDB)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/roadmaps/2/progress", nil)
	req.Header.Set("X-User-ID", "1")

	for b.Loop() {
		w := httptest.NewRecorder()
		testRouter.ServeHTTP(w, req)
	}
}

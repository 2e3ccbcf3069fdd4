package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/learntrail/backend/docs"
	"github.com/learntrail/backend/internal/clients/gemini"
	"github.com/learntrail/backend/internal/clients/videosearch"
	"github.com/learntrail/backend/internal/config"
	"github.com/learntrail/backend/internal/handlers"
	"github.com/learntrail/backend/internal/logger"
	"github.com/learntrail/backend/internal/middleware"
	"github.com/learntrail/backend/internal/repositories"
	"github.com/learntrail/backend/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title LearnTrail API
// @version 1.0
// @description API for AI-generated learning roadmaps with per-step video playlists

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LearnTrail backend")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize external clients
	clientCtx := context.Background()
	generatorClient, err := gemini.NewClient(clientCtx, cfg.Generator.APIKey, cfg.Generator.Model, cfg.Generator.Timeout, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to create content generator client", zap.Error(err))
	}
	defer generatorClient.Close()

	searchClient, err := videosearch.NewClient(clientCtx, cfg.Search.APIKey, cfg.Search.Timeout, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to create video search client", zap.Error(err))
	}

	// Initialize repositories
	usersRepo := repositories.NewUsersRepository(db, logger.Logger)
	roadmapsRepo := repositories.NewRoadmapsRepository(db, logger.Logger)
	videosRepo := repositories.NewVideosRepository(db, logger.Logger)
	progressRepo := repositories.NewProgressRepository(db, logger.Logger)
	quizzesRepo := repositories.NewQuizzesRepository(db, logger.Logger)

	// Initialize services
	userService := services.NewUserService(usersRepo, logger.Logger)
	roadmapService := services.NewRoadmapService(roadmapsRepo, usersRepo, generatorClient, logger.Logger)
	videoService := services.NewVideoService(videosRepo, roadmapsRepo, generatorClient, searchClient, logger.Logger)
	progressService := services.NewProgressService(progressRepo, roadmapsRepo, logger.Logger)
	quizService := services.NewQuizService(quizzesRepo, roadmapsRepo, generatorClient, logger.Logger)

	// Initialize handlers
	development := cfg.IsDevelopment()
	userHandler := handlers.NewUsersHandler(userService, logger.Logger, development)
	roadmapHandler := handlers.NewRoadmapsHandler(roadmapService, logger.Logger, development)
	videoHandler := handlers.NewVideosHandler(videoService, logger.Logger, development)
	progressHandler := handlers.NewProgressHandler(progressService, logger.Logger, development)
	quizHandler := handlers.NewQuizzesHandler(quizService, logger.Logger, development)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Register routes
	userHandler.RegisterRoutes(r)
	roadmapHandler.RegisterRoutes(r)
	videoHandler.RegisterRoutes(r)
	progressHandler.RegisterRoutes(r)
	quizHandler.RegisterRoutes(r)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generation endpoints wait on upstream calls
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "learntrail_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

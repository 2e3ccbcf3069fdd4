package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/learntrail/backend/internal/apperrors"
	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
)

type quizzesRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewQuizzesRepository creates a new instance of the QuizzesRepository interface
func NewQuizzesRepository(db *sql.DB, logger *zap.Logger) *quizzesRepository {
	return &quizzesRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a generated quiz
func (r *quizzesRepository) Create(ctx context.Context, userID, roadmapID int64, questions []models.QuizQuestion, metadata models.QuizMetadata) (*models.UserQuiz, error) {
	questionsData, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quiz questions: %w", err)
	}
	metadataData, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quiz metadata: %w", err)
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO user_quizzes (user_id, roadmap_id, questions, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, userID, roadmapID, questionsData, metadataData, now)
	if err != nil {
		r.logger.Error("failed to insert quiz", zap.Error(err), zap.Int64("roadmap_id", roadmapID))
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz id: %w", err)
	}

	return &models.UserQuiz{
		ID:        id,
		UserID:    userID,
		RoadmapID: roadmapID,
		Questions: questions,
		Metadata:  metadata,
		CreatedAt: now,
	}, nil
}

// GetByID retrieves a quiz with its questions
func (r *quizzesRepository) GetByID(ctx context.Context, id int64) (*models.UserQuiz, error) {
	var quiz models.UserQuiz
	var questionsData, metadataData []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, roadmap_id, questions, metadata, created_at
		FROM user_quizzes
		WHERE id = ?
	`, id).Scan(
		&quiz.ID,
		&quiz.UserID,
		&quiz.RoadmapID,
		&questionsData,
		&metadataData,
		&quiz.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("quiz not found")
		}
		r.logger.Error("failed to query quiz", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to query quiz: %w", err)
	}

	if err := json.Unmarshal(questionsData, &quiz.Questions); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidStructure, "quiz questions are malformed", err)
	}
	if err := json.Unmarshal(metadataData, &quiz.Metadata); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidStructure, "quiz metadata is malformed", err)
	}

	return &quiz, nil
}

// ListQuestionTexts returns the question texts of every quiz previously
// generated for the roadmap, so regeneration can avoid repeats
func (r *quizzesRepository) ListQuestionTexts(ctx context.Context, roadmapID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT questions
		FROM user_quizzes
		WHERE roadmap_id = ?
		ORDER BY created_at
	`, roadmapID)
	if err != nil {
		r.logger.Error("failed to query quiz questions", zap.Error(err), zap.Int64("roadmap_id", roadmapID))
		return nil, fmt.Errorf("failed to query quiz questions: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var questionsData []byte
		if err := rows.Scan(&questionsData); err != nil {
			return nil, fmt.Errorf("failed to scan quiz questions: %w", err)
		}
		var questions []models.QuizQuestion
		if err := json.Unmarshal(questionsData, &questions); err != nil {
			// skip malformed rows rather than failing the whole listing
			continue
		}
		for _, q := range questions {
			texts = append(texts, q.Question)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return texts, nil
}

// RecordAttempt stores one completed quiz run
func (r *quizzesRepository) RecordAttempt(ctx context.Context, quizID, userID int64, score, totalQuestions int) (*models.QuizAttempt, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO quiz_attempts (quiz_id, user_id, score, total_questions, completed_at)
		VALUES (?, ?, ?, ?, ?)
	`, quizID, userID, score, totalQuestions, now)
	if err != nil {
		r.logger.Error("failed to insert quiz attempt", zap.Error(err), zap.Int64("quiz_id", quizID))
		return nil, fmt.Errorf("failed to record quiz attempt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read attempt id: %w", err)
	}

	return &models.QuizAttempt{
		ID:             id,
		QuizID:         quizID,
		UserID:         userID,
		Score:          score,
		TotalQuestions: totalQuestions,
		CompletedAt:    now,
	}, nil
}

// ListAttempts retrieves all attempts for a quiz, newest first
func (r *quizzesRepository) ListAttempts(ctx context.Context, quizID int64) ([]models.QuizAttempt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, quiz_id, user_id, score, total_questions, completed_at
		FROM quiz_attempts
		WHERE quiz_id = ?
		ORDER BY completed_at DESC
	`, quizID)
	if err != nil {
		r.logger.Error("failed to query quiz attempts", zap.Error(err), zap.Int64("quiz_id", quizID))
		return nil, fmt.Errorf("failed to query quiz attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.QuizAttempt
	for rows.Next() {
		var attempt models.QuizAttempt
		if err := rows.Scan(
			&attempt.ID,
			&attempt.QuizID,
			&attempt.UserID,
			&attempt.Score,
			&attempt.TotalQuestions,
			&attempt.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quiz attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return attempts, nil
}

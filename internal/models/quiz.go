package models

import "time"

// QuizQuestion represents one generated quiz question
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
	Level        Level    `json:"level"`
	PointID      string   `json:"pointId,omitempty"`
}

// QuizMetadata describes how a quiz was generated
type QuizMetadata struct {
	Topic         string    `json:"topic"`
	QuestionCount int       `json:"questionCount"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// UserQuiz represents a persisted quiz for a roadmap
type UserQuiz struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"userId"`
	RoadmapID int64          `json:"roadmapId"`
	Questions []QuizQuestion `json:"questions"`
	Metadata  QuizMetadata   `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}

// QuizAttempt represents one completed run through a quiz
type QuizAttempt struct {
	ID             int64     `json:"id"`
	QuizID         int64     `json:"quizId"`
	UserID         int64     `json:"userId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

// RecordAttemptRequest represents a request to record a quiz attempt
type RecordAttemptRequest struct {
	Score          int `json:"score" example:"12"`
	TotalQuestions int `json:"totalQuestions" example:"15"`
}

package models

import "time"

// User represents an application user
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Email string `json:"email" example:"student@example.com"`
	Name  string `json:"name" example:"Student"`
}

// UserTopic represents a free-text learning topic submitted by a user
type UserTopic struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"createdAt"`
}

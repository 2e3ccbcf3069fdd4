package models

import "time"

// VideoItem represents a single instructional video. Immutable once stored;
// StepID and GeneratedAt are stamped by the video store at write time.
type VideoItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	VideoURL        string    `json:"videoUrl"`
	Duration        string    `json:"duration"`
	DurationMinutes int       `json:"durationMinutes"`
	Description     string    `json:"description"`
	ChannelTitle    string    `json:"channelTitle"`
	PublishedAt     string    `json:"publishedAt"`
	StepID          string    `json:"stepId,omitempty"`
	GeneratedAt     time.Time `json:"generatedAt,omitempty"`
}

// VideoRecord represents a persisted video set for one
// (roadmap, level, step, page, generation) key. The highest generation
// number for a page is its current content; regeneration demotes older
// content to higher page numbers instead of deleting it.
type VideoRecord struct {
	ID               int64       `json:"id"`
	UserRoadmapID    int64       `json:"userRoadmapId"`
	Level            Level       `json:"level"`
	PointID          string      `json:"pointId"`
	PageNumber       int         `json:"pageNumber"`
	GenerationNumber int         `json:"generationNumber"`
	VideoData        []VideoItem `json:"videoData"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// RegenerateVideosRequest represents a request to regenerate a step's videos
type RegenerateVideosRequest struct {
	VideoLengthPreference string `json:"videoLengthPreference" example:"medium"`
}

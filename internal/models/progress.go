package models

import "time"

// ProgressRecord represents per-user completion state for one roadmap step.
// Unique per (userId, roadmapId, pointId); writes use upsert semantics.
type ProgressRecord struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	RoadmapID   int64      `json:"roadmapId"`
	PointID     string     `json:"pointId"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
}

// UpdateProgressRequest represents a request to mark a step complete or not
type UpdateProgressRequest struct {
	PointID     string `json:"pointId" example:"step_1"`
	IsCompleted bool   `json:"isCompleted" example:"true"`
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Level represents a difficulty tier within a roadmap
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists all difficulty tiers in roadmap order
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Valid reports whether the level is one of the three known tiers
func (l Level) Valid() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}

// RoadmapStep represents one learning point within a level
type RoadmapStep struct {
	PointID    string `json:"pointId"`
	PointTitle string `json:"pointTitle"`
	Title      string `json:"title"`
}

// LevelValue holds the per-level payload of a stored roadmap.
// Legacy rows store a plain ordered array of topic titles; normalized rows
// store a map of sequential step IDs ("step_1", "step_2", ...) to step
// metadata. Readers must normalize before relying on step IDs.
type LevelValue struct {
	Steps  map[string]RoadmapStep
	Legacy []string
}

// UnmarshalJSON accepts both the legacy array shape and the step-map shape.
// Shape detection is structural, not content-based.
func (v *LevelValue) UnmarshalJSON(data []byte) error {
	v.Steps = nil
	v.Legacy = nil

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '[':
		return json.Unmarshal(trimmed, &v.Legacy)
	case '{':
		return json.Unmarshal(trimmed, &v.Steps)
	default:
		return fmt.Errorf("unexpected level value shape: %s", string(trimmed[0]))
	}
}

// MarshalJSON preserves whichever shape the value currently holds
func (v LevelValue) MarshalJSON() ([]byte, error) {
	if v.Steps != nil {
		return json.Marshal(v.Steps)
	}
	if v.Legacy != nil {
		return json.Marshal(v.Legacy)
	}
	return []byte("null"), nil
}

// Normalized reports whether the value already holds the step-map shape
func (v *LevelValue) Normalized() bool {
	return v.Steps != nil
}

// normalize migrates the legacy array shape into the step map. Returns true
// when a migration happened. Already-normalized and absent values are left
// unchanged.
func (v *LevelValue) normalize() bool {
	if v.Steps != nil || v.Legacy == nil {
		return false
	}

	steps := make(map[string]RoadmapStep, len(v.Legacy))
	for i, title := range v.Legacy {
		stepID := StepID(i + 1)
		steps[stepID] = RoadmapStep{
			PointID:    stepID,
			PointTitle: title,
			Title:      title,
		}
	}
	v.Steps = steps
	v.Legacy = nil
	return true
}

// StepCount returns the number of steps defined for the level in either shape
func (v *LevelValue) StepCount() int {
	if v.Steps != nil {
		return len(v.Steps)
	}
	return len(v.Legacy)
}

// StepsInOrder returns the level's steps sorted by step number
func (v *LevelValue) StepsInOrder() []RoadmapStep {
	if v.Steps == nil {
		return nil
	}
	steps := make([]RoadmapStep, 0, len(v.Steps))
	for _, step := range v.Steps {
		steps = append(steps, step)
	}
	sort.Slice(steps, func(i, j int) bool {
		ni, _ := ParseStepNumber(steps[i].PointID)
		nj, _ := ParseStepNumber(steps[j].PointID)
		return ni < nj
	})
	return steps
}

// RoadmapLevels is the roadmap_data JSON structure: three fixed levels, each
// holding either a legacy topic list or a normalized step map
type RoadmapLevels struct {
	Beginner     LevelValue `json:"beginner"`
	Intermediate LevelValue `json:"intermediate"`
	Advanced     LevelValue `json:"advanced"`
}

// Level returns the value for the given tier, or nil for an unknown tier
func (r *RoadmapLevels) Level(l Level) *LevelValue {
	switch l {
	case LevelBeginner:
		return &r.Beginner
	case LevelIntermediate:
		return &r.Intermediate
	case LevelAdvanced:
		return &r.Advanced
	default:
		return nil
	}
}

// Normalize migrates every legacy-shaped level to the step-map shape.
// Idempotent. Returns true when at least one level was migrated, meaning the
// stored representation must be rewritten.
func (r *RoadmapLevels) Normalize() bool {
	changed := r.Beginner.normalize()
	if r.Intermediate.normalize() {
		changed = true
	}
	if r.Advanced.normalize() {
		changed = true
	}
	return changed
}

// StepID builds the sequential step identifier for a 1-based step number
func StepID(n int) string {
	return fmt.Sprintf("step_%d", n)
}

// ParseStepNumber extracts the trailing integer from a step identifier
func ParseStepNumber(stepID string) (int, error) {
	idx := strings.LastIndex(stepID, "_")
	if idx < 0 || idx == len(stepID)-1 {
		return 0, fmt.Errorf("malformed step id: %q", stepID)
	}
	n, err := strconv.Atoi(stepID[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed step id: %q", stepID)
	}
	return n, nil
}

// UserRoadmap represents a persisted roadmap row
type UserRoadmap struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userId"`
	TopicID   int64         `json:"topicId"`
	Topic     string        `json:"topic"`
	Data      RoadmapLevels `json:"roadmap"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// GeneratedRoadmap is the content generator's roadmap response
type GeneratedRoadmap struct {
	ExtractedTopic string `json:"extractedTopic"`
	Roadmap        struct {
		Beginner     []string `json:"beginner"`
		Intermediate []string `json:"intermediate"`
		Advanced     []string `json:"advanced"`
	} `json:"roadmap"`
}

// GenerateRoadmapRequest represents a request to create a roadmap
type GenerateRoadmapRequest struct {
	Topic                 string `json:"topic" example:"learn react from scratch"`
	DepthPreference       string `json:"depthPreference" example:"balanced"`
	VideoLengthPreference string `json:"videoLengthPreference" example:"medium"`
}

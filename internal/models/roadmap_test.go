package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedError bool
		wantLegacy    []string
		wantSteps     map[string]RoadmapStep
	}{
		{
			name:       "legacy array shape",
			input:      `["Syntax","Loops"]`,
			wantLegacy: []string{"Syntax", "Loops"},
		},
		{
			name:  "step map shape",
			input: `{"step_1":{"pointId":"step_1","pointTitle":"Syntax","title":"Syntax"}}`,
			wantSteps: map[string]RoadmapStep{
				"step_1": {PointID: "step_1", PointTitle: "Syntax", Title: "Syntax"},
			},
		},
		{
			name:  "null is absent",
			input: `null`,
		},
		{
			name:       "empty array stays legacy",
			input:      `[]`,
			wantLegacy: []string{},
		},
		{
			name:          "scalar is rejected",
			input:         `42`,
			expectedError: true,
		},
		{
			name:          "string is rejected",
			input:         `"beginner"`,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var value LevelValue
			err := json.Unmarshal([]byte(tt.input), &value)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLegacy, value.Legacy)
			assert.Equal(t, tt.wantSteps, value.Steps)
		})
	}
}

func TestLevelValue_MarshalPreservesShape(t *testing.T) {
	legacy := LevelValue{Legacy: []string{"Syntax"}}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	assert.JSONEq(t, `["Syntax"]`, string(data))

	steps := LevelValue{Steps: map[string]RoadmapStep{
		"step_1": {PointID: "step_1", PointTitle: "Syntax", Title: "Syntax"},
	}}
	data, err = json.Marshal(steps)
	require.NoError(t, err)
	assert.JSONEq(t, `{"step_1":{"pointId":"step_1","pointTitle":"Syntax","title":"Syntax"}}`, string(data))

	var absent LevelValue
	data, err = json.Marshal(absent)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestRoadmapLevels_Normalize(t *testing.T) {
	t.Run("migrates legacy arrays to step maps", func(t *testing.T) {
		levels := RoadmapLevels{
			Beginner: LevelValue{Legacy: []string{"Syntax", "Loops"}},
		}

		changed := levels.Normalize()

		assert.True(t, changed)
		assert.Equal(t, map[string]RoadmapStep{
			"step_1": {PointID: "step_1", PointTitle: "Syntax", Title: "Syntax"},
			"step_2": {PointID: "step_2", PointTitle: "Loops", Title: "Loops"},
		}, levels.Beginner.Steps)
		assert.Nil(t, levels.Beginner.Legacy)
	})

	t.Run("preserves source order in step numbering", func(t *testing.T) {
		titles := []string{"A", "B", "C", "D", "E"}
		levels := RoadmapLevels{Intermediate: LevelValue{Legacy: titles}}

		levels.Normalize()

		steps := levels.Intermediate.StepsInOrder()
		require.Len(t, steps, 5)
		for i, step := range steps {
			assert.Equal(t, StepID(i+1), step.PointID)
			assert.Equal(t, titles[i], step.PointTitle)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		levels := RoadmapLevels{
			Beginner: LevelValue{Legacy: []string{"Syntax"}},
		}

		assert.True(t, levels.Normalize())
		first := levels.Beginner.Steps

		assert.False(t, levels.Normalize())
		assert.Equal(t, first, levels.Beginner.Steps)
	})

	t.Run("absent level is left untouched", func(t *testing.T) {
		levels := RoadmapLevels{
			Advanced: LevelValue{Legacy: []string{"Internals"}},
		}

		changed := levels.Normalize()

		assert.True(t, changed)
		assert.Nil(t, levels.Beginner.Steps)
		assert.Nil(t, levels.Beginner.Legacy)
		assert.False(t, levels.Beginner.Normalized())
	})

	t.Run("already normalized reports no change", func(t *testing.T) {
		levels := RoadmapLevels{
			Beginner: LevelValue{Steps: map[string]RoadmapStep{
				"step_1": {PointID: "step_1", PointTitle: "Syntax", Title: "Syntax"},
			}},
		}

		assert.False(t, levels.Normalize())
	})
}

func TestRoadmapLevels_NormalizeRoundTrip(t *testing.T) {
	// A stored legacy row normalizes and re-marshals to the step-map shape
	raw := `{"beginner":["Syntax","Loops"],"intermediate":null,"advanced":null}`

	var levels RoadmapLevels
	require.NoError(t, json.Unmarshal([]byte(raw), &levels))
	assert.True(t, levels.Normalize())

	data, err := json.Marshal(levels)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"beginner": {
			"step_1": {"pointId":"step_1","pointTitle":"Syntax","title":"Syntax"},
			"step_2": {"pointId":"step_2","pointTitle":"Loops","title":"Loops"}
		},
		"intermediate": null,
		"advanced": null
	}`, string(data))
}

func TestParseStepNumber(t *testing.T) {
	tests := []struct {
		name          string
		stepID        string
		expected      int
		expectedError bool
	}{
		{name: "simple", stepID: "step_1", expected: 1},
		{name: "multi digit", stepID: "step_42", expected: 42},
		{name: "missing separator", stepID: "step1", expectedError: true},
		{name: "trailing separator", stepID: "step_", expectedError: true},
		{name: "non numeric suffix", stepID: "step_x", expectedError: true},
		{name: "empty", stepID: "", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseStepNumber(tt.stepID)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestLevel_Valid(t *testing.T) {
	assert.True(t, LevelBeginner.Valid())
	assert.True(t, LevelIntermediate.Valid())
	assert.True(t, LevelAdvanced.Valid())
	assert.False(t, Level("expert").Valid())
	assert.False(t, Level("").Valid())
}

func TestLevelValue_StepCount(t *testing.T) {
	legacy := LevelValue{Legacy: []string{"a", "b", "c"}}
	assert.Equal(t, 3, legacy.StepCount())

	normalized := LevelValue{Steps: map[string]RoadmapStep{
		"step_1": {}, "step_2": {},
	}}
	assert.Equal(t, 2, normalized.StepCount())

	var absent LevelValue
	assert.Equal(t, 0, absent.StepCount())
}

// Package gemini wraps the generative-language API used to produce roadmap,
// video-title and quiz content.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/learntrail/backend/internal/models"
	"github.com/learntrail/backend/internal/retry"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	titlesPerStep = 5
	quizQuestions = 15
)

// Preferences carry the user's generation preferences into prompts
type Preferences struct {
	Depth       string
	VideoLength string
}

// Client wraps a generative model with request timeouts and the one-shot
// reduced-prompt retry for transient overload
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a content generator client
func NewClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create generator client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)

	return &Client{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Close releases the underlying client
func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateRoadmap asks the generator for a three-level roadmap for the topic.
// Malformed or non-JSON responses are a hard failure.
func (c *Client) GenerateRoadmap(ctx context.Context, topic string, prefs Preferences) (*models.GeneratedRoadmap, error) {
	full := buildRoadmapPrompt(topic, prefs, false)
	reduced := buildRoadmapPrompt(topic, prefs, true)

	raw, err := c.generateJSON(ctx, full, reduced)
	if err != nil {
		return nil, err
	}

	var roadmap models.GeneratedRoadmap
	if err := json.Unmarshal([]byte(raw), &roadmap); err != nil {
		return nil, fmt.Errorf("generator returned invalid roadmap JSON: %w", err)
	}
	if roadmap.ExtractedTopic == "" {
		roadmap.ExtractedTopic = topic
	}

	return &roadmap, nil
}

// GenerateVideoTitles asks the generator for search titles for one step
func (c *Client) GenerateVideoTitles(ctx context.Context, pointTitle, topic string, prefs Preferences) ([]string, error) {
	full := buildTitlesPrompt(pointTitle, topic, prefs, false)
	reduced := buildTitlesPrompt(pointTitle, topic, prefs, true)

	raw, err := c.generateJSON(ctx, full, reduced)
	if err != nil {
		return nil, err
	}

	var titles []string
	if err := json.Unmarshal([]byte(raw), &titles); err != nil {
		return nil, fmt.Errorf("generator returned invalid titles JSON: %w", err)
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("generator returned no titles")
	}
	if len(titles) > titlesPerStep {
		titles = titles[:titlesPerStep]
	}

	return titles, nil
}

// GenerateQuiz asks the generator for quiz questions over the roadmap
// structure, avoiding previously used question texts
func (c *Client) GenerateQuiz(ctx context.Context, roadmap *models.UserRoadmap, usedQuestions []string) ([]models.QuizQuestion, error) {
	full := buildQuizPrompt(roadmap, usedQuestions, false)
	reduced := buildQuizPrompt(roadmap, usedQuestions, true)

	raw, err := c.generateJSON(ctx, full, reduced)
	if err != nil {
		return nil, err
	}

	var questions []models.QuizQuestion
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("generator returned invalid quiz JSON: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("generator returned no questions")
	}
	if len(questions) > quizQuestions {
		questions = questions[:quizQuestions]
	}

	return questions, nil
}

// generateJSON runs a generation with the fixed timeout, retrying once with
// the reduced prompt when the upstream reports transient overload
func (c *Client) generateJSON(ctx context.Context, fullPrompt, reducedPrompt string) (string, error) {
	var text string

	policy := retry.Policy{
		MaxAttempts: 2,
		BaseDelay:   500 * time.Millisecond,
		Retryable:   isTransientOverload,
	}

	err := retry.Do(ctx, policy, func(ctx context.Context, attempt int) error {
		prompt := fullPrompt
		if attempt > 1 {
			c.logger.Warn("generator overloaded, retrying with reduced prompt")
			prompt = reducedPrompt
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.model.GenerateContent(callCtx, genai.Text(prompt))
		if err != nil {
			return fmt.Errorf("generator call failed: %w", err)
		}

		text = stripJSONFences(extractText(resp))
		if text == "" {
			return fmt.Errorf("generator returned empty response")
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return text, nil
}

// isTransientOverload reports whether the upstream error is worth one retry
func isTransientOverload(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code == 503
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "overloaded") || strings.Contains(msg, "resource exhausted")
}

// extractText concatenates all text parts of a generation response
func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

// stripJSONFences removes markdown code fences the model tends to wrap
// JSON responses in
func stripJSONFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func buildRoadmapPrompt(topic string, prefs Preferences, reduced bool) string {
	var b strings.Builder

	b.WriteString("You are an expert curriculum designer. Build a learning roadmap for the topic below.\n\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON object. No preamble, no markdown, no backticks.\n\n")
	b.WriteString(`JSON schema:
{"extractedTopic": "string", "roadmap": {"beginner": ["string"], "intermediate": ["string"], "advanced": ["string"]}}
`)
	b.WriteString("\nEach level holds an ordered list of learning point titles, easiest first.\n")

	if !reduced {
		switch prefs.Depth {
		case "basic":
			b.WriteString("Depth: 3-4 points per level, essentials only.\n")
		case "detailed":
			b.WriteString("Depth: 6-8 points per level, thorough coverage.\n")
		default:
			b.WriteString("Depth: 4-6 points per level.\n")
		}
		b.WriteString("Extract the core technology or subject from the free-text topic into extractedTopic.\n")
		b.WriteString("Point titles must be concrete and searchable as video queries.\n")
	}

	b.WriteString("\nTopic: ")
	b.WriteString(topic)
	b.WriteString("\n")

	return b.String()
}

func buildTitlesPrompt(pointTitle, topic string, prefs Preferences, reduced bool) string {
	var b strings.Builder

	b.WriteString("You are helping find instructional videos for a learning step.\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON array of strings. No preamble, no markdown.\n\n")
	b.WriteString(fmt.Sprintf("Generate exactly %d distinct video search titles for this step.\n", titlesPerStep))

	if !reduced {
		if prefs.VideoLength != "" {
			b.WriteString(fmt.Sprintf("Prefer titles that suggest %s-length tutorials.\n", prefs.VideoLength))
		}
		b.WriteString("Titles must each target a different angle of the step (overview, hands-on, common mistakes, ...).\n")
	}

	b.WriteString("\nStep: ")
	b.WriteString(pointTitle)
	b.WriteString("\nOverall topic: ")
	b.WriteString(topic)
	b.WriteString("\n")

	return b.String()
}

func buildQuizPrompt(roadmap *models.UserRoadmap, usedQuestions []string, reduced bool) string {
	var b strings.Builder

	b.WriteString("You are an expert assessor. Generate quiz questions over this learning roadmap.\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON array. No preamble, no markdown, no backticks.\n\n")
	b.WriteString(fmt.Sprintf("Generate exactly %d questions.\n", quizQuestions))
	b.WriteString(`JSON schema per question:
{"question": "string", "options": ["string","string","string","string"], "correctIndex": int, "explanation": "string", "level": "beginner"|"intermediate"|"advanced", "pointId": "string"}
`)

	b.WriteString("\nRoadmap topic: ")
	b.WriteString(roadmap.Topic)
	b.WriteString("\n")
	for _, level := range models.Levels {
		value := roadmap.Data.Level(level)
		steps := value.StepsInOrder()
		if len(steps) == 0 {
			continue
		}
		b.WriteString(string(level))
		b.WriteString(":\n")
		for _, step := range steps {
			b.WriteString(fmt.Sprintf("  %s: %s\n", step.PointID, step.PointTitle))
		}
	}

	if !reduced && len(usedQuestions) > 0 {
		b.WriteString("\nDo NOT repeat any of these previously used questions:\n")
		for _, q := range usedQuestions {
			b.WriteString("- ")
			b.WriteString(q)
			b.WriteString("\n")
		}
	}

	return b.String()
}

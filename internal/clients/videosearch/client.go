// Package videosearch wraps the external video-search API and provides the
// curated fallback catalog used when its quota is exhausted.
package videosearch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/learntrail/backend/internal/models"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrQuotaExceeded signals that the search API quota is exhausted and the
// caller should fall back to the curated catalog
var ErrQuotaExceeded = errors.New("video search quota exceeded")

const searchMaxResults = 10

// Client wraps the YouTube Data API
type Client struct {
	svc     *youtube.Service
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a video search client
func NewClient(ctx context.Context, apiKey string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create video search client: %w", err)
	}

	return &Client{
		svc:     svc,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Search returns the best candidate video for the query, skipping excluded
// IDs and anything shorter than minDurationMinutes. Returns nil when no
// candidate qualifies, and ErrQuotaExceeded when the API quota is exhausted.
func (c *Client) Search(ctx context.Context, queryTitle string, excludedIDs []string, minDurationMinutes int) (*models.VideoItem, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	searchResp, err := c.svc.Search.List([]string{"id", "snippet"}).
		Q(queryTitle).
		Type("video").
		VideoEmbeddable("true").
		MaxResults(searchMaxResults).
		Context(callCtx).
		Do()
	if err != nil {
		if isQuotaExceeded(err) {
			c.logger.Warn("video search quota exhausted", zap.String("query", queryTitle))
			return nil, ErrQuotaExceeded
		}
		return nil, fmt.Errorf("video search failed: %w", err)
	}

	excluded := make(map[string]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}

	candidateIDs := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.Id == nil || item.Id.VideoId == "" || excluded[item.Id.VideoId] {
			continue
		}
		candidateIDs = append(candidateIDs, item.Id.VideoId)
	}
	if len(candidateIDs) == 0 {
		return nil, nil
	}

	// Second call for durations; the search endpoint does not return them
	videosResp, err := c.svc.Videos.List([]string{"contentDetails", "snippet"}).
		Id(candidateIDs...).
		Context(callCtx).
		Do()
	if err != nil {
		if isQuotaExceeded(err) {
			return nil, ErrQuotaExceeded
		}
		return nil, fmt.Errorf("video details lookup failed: %w", err)
	}

	// Candidates arrive relevance-ranked; take the first one meeting the
	// duration constraint
	for _, id := range candidateIDs {
		for _, video := range videosResp.Items {
			if video.Id != id || video.ContentDetails == nil || video.Snippet == nil {
				continue
			}
			minutes := durationMinutes(video.ContentDetails.Duration)
			if minutes < minDurationMinutes {
				continue
			}
			return &models.VideoItem{
				ID:              video.Id,
				Title:           video.Snippet.Title,
				VideoURL:        "https://www.youtube.com/watch?v=" + video.Id,
				Duration:        displayDuration(video.ContentDetails.Duration),
				DurationMinutes: minutes,
				Description:     video.Snippet.Description,
				ChannelTitle:    video.Snippet.ChannelTitle,
				PublishedAt:     video.Snippet.PublishedAt,
			}, nil
		}
	}

	return nil, nil
}

// isQuotaExceeded inspects the API error for quota exhaustion
func isQuotaExceeded(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code != 403 {
		return false
	}
	for _, item := range apiErr.Errors {
		if item.Reason == "quotaExceeded" || item.Reason == "dailyLimitExceeded" {
			return true
		}
	}
	return false
}

// parseISODuration converts an ISO 8601 duration ("PT1H2M3S") to hours,
// minutes and seconds
func parseISODuration(raw string) (hours, minutes, seconds int) {
	raw = strings.TrimPrefix(raw, "P")
	raw = strings.TrimPrefix(raw, "T")

	value := 0
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			value = value*10 + int(r-'0')
		case r == 'H':
			hours = value
			value = 0
		case r == 'M':
			minutes = value
			value = 0
		case r == 'S':
			seconds = value
			value = 0
		case r == 'T':
			value = 0
		default:
			// date designators (days and above) never appear for videos
			value = 0
		}
	}
	return hours, minutes, seconds
}

// durationMinutes returns the total whole minutes of an ISO 8601 duration
func durationMinutes(raw string) int {
	h, m, s := parseISODuration(raw)
	total := h*60 + m
	if s >= 30 {
		total++
	}
	return total
}

// displayDuration formats an ISO 8601 duration as "h:mm:ss" or "m:ss"
func displayDuration(raw string) string {
	h, m, s := parseISODuration(raw)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

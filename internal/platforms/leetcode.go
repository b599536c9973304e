package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"contest-compass/internal/models"
)

const contestListQuery = `query getContestList { allContests { title startTime duration titleSlug } }`

// LeetCodeFetcher reads the full contest list from LeetCode's GraphQL endpoint.
type LeetCodeFetcher struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewLeetCodeFetcher(baseURL string, logger *zap.Logger) *LeetCodeFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeetCodeFetcher{baseURL: baseURL, client: defaultClient(), logger: logger}
}

func (f *LeetCodeFetcher) Platform() string { return PlatformLeetCode }

func (f *LeetCodeFetcher) Fetch(ctx context.Context) ([]models.Contest, error) {
	body, err := json.Marshal(map[string]string{"query": contestListQuery})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leetcode graphql request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leetcode graphql status %d", resp.StatusCode)
	}

	var payload struct {
		Data struct {
			AllContests []struct {
				Title     string `json:"title"`
				StartTime int64  `json:"startTime"`
				Duration  int64  `json:"duration"`
				TitleSlug string `json:"titleSlug"`
			} `json:"allContests"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("leetcode graphql decode: %w", err)
	}

	now := time.Now()
	var upcoming, past []models.Contest
	for _, c := range payload.Data.AllContests {
		if c.StartTime <= 0 || c.Duration <= 0 {
			f.logger.Warn("dropping malformed leetcode contest", zap.String("title", c.Title))
			continue
		}
		start := time.Unix(c.StartTime, 0).UTC()
		contest := models.Contest{
			Title:     c.Title,
			Platform:  PlatformLeetCode,
			StartTime: start,
			Duration:  int(c.Duration / 60),
			URL:       fmt.Sprintf("%s/contest/%s", f.baseURL, c.TitleSlug),
			Past:      start.Before(now),
		}
		if contest.Past {
			past = append(past, contest)
		} else {
			upcoming = append(upcoming, contest)
		}
	}

	// LeetCode returns its whole history; keep only the most recent
	// finished contests.
	sort.Slice(past, func(i, j int) bool { return past[i].StartTime.After(past[j].StartTime) })
	if len(past) > pastWindow {
		past = past[:pastWindow]
	}

	return append(upcoming, past...), nil
}

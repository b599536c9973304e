package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"contest-compass/internal/models"
)

// CodeChefFetcher reads the contest listing from CodeChef's public API.
type CodeChefFetcher struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewCodeChefFetcher(baseURL string, logger *zap.Logger) *CodeChefFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CodeChefFetcher{baseURL: baseURL, client: defaultClient(), logger: logger}
}

func (f *CodeChefFetcher) Platform() string { return PlatformCodeChef }

type codechefContest struct {
	Code         string `json:"contest_code"`
	Name         string `json:"contest_name"`
	StartDateISO string `json:"contest_start_date_iso"`
	Duration     string `json:"contest_duration"`
}

func (f *CodeChefFetcher) Fetch(ctx context.Context) ([]models.Contest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/list/contests/all", nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("codechef contest list request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("codechef contest list status %d", resp.StatusCode)
	}

	var payload struct {
		FutureContests []codechefContest `json:"future_contests"`
		PastContests   []codechefContest `json:"past_contests"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("codechef contest list decode: %w", err)
	}

	past := payload.PastContests
	if len(past) > pastWindow {
		past = past[:pastWindow]
	}

	var contests []models.Contest
	for _, c := range payload.FutureContests {
		if contest, ok := f.normalize(c, false); ok {
			contests = append(contests, contest)
		}
	}
	for _, c := range past {
		if contest, ok := f.normalize(c, true); ok {
			contests = append(contests, contest)
		}
	}

	return contests, nil
}

func (f *CodeChefFetcher) normalize(c codechefContest, past bool) (models.Contest, bool) {
	start, err := time.Parse(time.RFC3339, c.StartDateISO)
	if err != nil {
		f.logger.Warn("dropping codechef contest with bad start date",
			zap.String("name", c.Name), zap.String("start", c.StartDateISO))
		return models.Contest{}, false
	}
	minutes, err := strconv.Atoi(c.Duration)
	if err != nil || minutes <= 0 {
		f.logger.Warn("dropping codechef contest with bad duration",
			zap.String("name", c.Name), zap.String("duration", c.Duration))
		return models.Contest{}, false
	}
	return models.Contest{
		Title:     c.Name,
		Platform:  PlatformCodeChef,
		StartTime: start.UTC(),
		Duration:  minutes,
		URL:       fmt.Sprintf("%s/%s", f.baseURL, c.Code),
		Past:      past,
	}, true
}

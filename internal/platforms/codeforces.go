package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"contest-compass/internal/models"
)

// CodeforcesFetcher reads contest.list from the public Codeforces API.
type CodeforcesFetcher struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewCodeforcesFetcher(baseURL string, logger *zap.Logger) *CodeforcesFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CodeforcesFetcher{baseURL: baseURL, client: defaultClient(), logger: logger}
}

func (f *CodeforcesFetcher) Platform() string { return PlatformCodeforces }

func (f *CodeforcesFetcher) Fetch(ctx context.Context) ([]models.Contest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/contest.list", nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("codeforces contest.list request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("codeforces contest.list status %d", resp.StatusCode)
	}

	var payload struct {
		Status string `json:"status"`
		Result []struct {
			ID               int64  `json:"id"`
			Name             string `json:"name"`
			Phase            string `json:"phase"`
			DurationSeconds  int64  `json:"durationSeconds"`
			StartTimeSeconds int64  `json:"startTimeSeconds"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("codeforces contest.list decode: %w", err)
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("codeforces contest.list status %q", payload.Status)
	}

	var contests []models.Contest
	finished := 0
	for _, c := range payload.Result {
		if c.Phase != "BEFORE" && c.Phase != "FINISHED" {
			continue
		}
		// Finished contests come back newest first; the first pastWindow
		// entries are the recent history we care about.
		if c.Phase == "FINISHED" {
			if finished >= pastWindow {
				continue
			}
			finished++
		}
		if c.StartTimeSeconds <= 0 || c.DurationSeconds <= 0 {
			f.logger.Warn("dropping malformed codeforces contest", zap.String("name", c.Name))
			continue
		}
		contests = append(contests, models.Contest{
			Title:     c.Name,
			Platform:  PlatformCodeforces,
			StartTime: time.Unix(c.StartTimeSeconds, 0).UTC(),
			Duration:  int(c.DurationSeconds / 60),
			URL:       fmt.Sprintf("%s/contest/%d", f.baseURL, c.ID),
			Past:      c.Phase == "FINISHED",
		})
	}

	return contests, nil
}

package aggregator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"contest-compass/internal/models"
	"contest-compass/internal/platforms"
)

type stubFetcher struct {
	platform string
	contests []models.Contest
	err      error
}

func (f stubFetcher) Platform() string { return f.platform }

func (f stubFetcher) Fetch(ctx context.Context) ([]models.Contest, error) {
	return f.contests, f.err
}

func contest(title, platform string) models.Contest {
	return models.Contest{
		Title:     title,
		Platform:  platform,
		StartTime: time.Now().Add(time.Hour),
		Duration:  90,
		URL:       "https://example.com",
	}
}

func TestFetchAllToleratesSingleFailure(t *testing.T) {
	agg := New([]platforms.Fetcher{
		stubFetcher{platform: platforms.PlatformLeetCode, contests: []models.Contest{
			contest("Weekly Contest 300", platforms.PlatformLeetCode),
			contest("Biweekly Contest 120", platforms.PlatformLeetCode),
		}},
		stubFetcher{platform: platforms.PlatformCodeforces, err: errors.New("connection refused")},
		stubFetcher{platform: platforms.PlatformCodeChef, contests: []models.Contest{
			contest("Starters 100", platforms.PlatformCodeChef),
		}},
	}, nil)

	all := agg.FetchAll(context.Background())

	assert.Len(t, all, 3)
	assert.Equal(t, "Weekly Contest 300", all[0].Title)
	assert.Equal(t, "Biweekly Contest 120", all[1].Title)
	assert.Equal(t, "Starters 100", all[2].Title)
}

func TestFetchAllReturnsEmptyWhenEveryFetcherFails(t *testing.T) {
	agg := New([]platforms.Fetcher{
		stubFetcher{platform: platforms.PlatformLeetCode, err: errors.New("down")},
		stubFetcher{platform: platforms.PlatformCodeforces, err: errors.New("down")},
		stubFetcher{platform: platforms.PlatformCodeChef, err: errors.New("down")},
	}, nil)

	assert.Empty(t, agg.FetchAll(context.Background()))
}

package aggregator

import (
	"context"

	"go.uber.org/zap"

	"contest-compass/internal/models"
	"contest-compass/internal/platforms"
)

// Aggregator merges the contest lists of all configured platforms.
// One platform being down must not block ingestion of the others, so a
// fetcher error is logged and contributes zero records.
type Aggregator struct {
	fetchers []platforms.Fetcher
	logger   *zap.Logger
}

func New(fetchers []platforms.Fetcher, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{fetchers: fetchers, logger: logger}
}

// FetchAll concatenates all fetcher outputs in fetcher order. When every
// fetcher fails the result is an empty list, not an error: ingestion
// becomes a no-op for this cycle and the next scheduled run retries.
func (a *Aggregator) FetchAll(ctx context.Context) []models.Contest {
	var all []models.Contest
	for _, f := range a.fetchers {
		contests, err := f.Fetch(ctx)
		if err != nil {
			a.logger.Error("fetching contests failed",
				zap.String("platform", f.Platform()), zap.Error(err))
			continue
		}
		a.logger.Info("fetched contests",
			zap.String("platform", f.Platform()), zap.Int("count", len(contests)))
		all = append(all, contests...)
	}
	return all
}

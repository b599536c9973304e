package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"contest-compass/internal/aggregator"
	"contest-compass/internal/models"
)

// Store is the slice of the repository the ingestor writes through.
type Store interface {
	UpsertContest(ctx context.Context, contest *models.Contest) error
	MarkFinishedContests(ctx context.Context, now time.Time) (int64, error)
}

// Ingestor pulls the aggregated contest list and reconciles it into the
// store. Every upsert is independent and idempotent, so running two
// ingestion cycles concurrently or back to back is safe.
type Ingestor struct {
	agg    *aggregator.Aggregator
	store  Store
	logger *zap.Logger
}

func New(agg *aggregator.Aggregator, store Store, logger *zap.Logger) *Ingestor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{agg: agg, store: store, logger: logger}
}

// Run fetches from all platforms and upserts each record. A failure on
// one record is logged and the rest are still processed. Returns how many
// records were stored.
func (i *Ingestor) Run(ctx context.Context) (int, error) {
	contests := i.agg.FetchAll(ctx)

	stored := 0
	for idx := range contests {
		if err := i.store.UpsertContest(ctx, &contests[idx]); err != nil {
			i.logger.Error("storing contest failed",
				zap.String("title", contests[idx].Title),
				zap.String("platform", contests[idx].Platform),
				zap.Error(err))
			continue
		}
		stored++
	}

	i.logger.Info("ingestion cycle finished",
		zap.Int("fetched", len(contests)), zap.Int("stored", stored))
	return stored, nil
}

// SweepPast marks every contest whose start time has passed. Runs on its
// own schedule and before solution matching.
func (i *Ingestor) SweepPast(ctx context.Context, now time.Time) {
	updated, err := i.store.MarkFinishedContests(ctx, now)
	if err != nil {
		i.logger.Error("marking finished contests failed", zap.Error(err))
		return
	}
	if updated > 0 {
		i.logger.Info("marked contests as past", zap.Int64("count", updated))
	}
}

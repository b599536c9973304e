package solutions

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"contest-compass/internal/models"
)

// Store is the slice of the repository the checker needs.
type Store interface {
	MarkFinishedContests(ctx context.Context, now time.Time) (int64, error)
	ListUnsolvedPast(ctx context.Context) ([]models.Contest, error)
	SetSolutionLink(ctx context.Context, id uuid.UUID, link string) error
}

// Checker attaches solution links to finished contests that lack one.
// Contests are worked through strictly one at a time, most recent first,
// so an interrupted or rate-limited run has covered the contests people
// are most likely to look up.
type Checker struct {
	store     Store
	source    VideoSource
	playlists map[string]string
	logger    *zap.Logger
}

func NewChecker(store Store, source VideoSource, playlists map[string]string, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{store: store, source: source, playlists: playlists, logger: logger}
}

// Run performs one matching cycle. When no contest needs a solution it
// returns before any video metadata is fetched, sparing API quota. A
// single contest's failure is logged and never aborts the rest.
func (c *Checker) Run(ctx context.Context) error {
	if updated, err := c.store.MarkFinishedContests(ctx, time.Now()); err != nil {
		c.logger.Error("marking finished contests failed", zap.Error(err))
	} else if updated > 0 {
		c.logger.Info("marked contests as past", zap.Int64("count", updated))
	}

	contests, err := c.store.ListUnsolvedPast(ctx)
	if err != nil {
		return err
	}
	if len(contests) == 0 {
		c.logger.Info("no contests need solutions, skipping video lookup")
		return nil
	}

	sort.Slice(contests, func(i, j int) bool {
		return contests[i].StartTime.After(contests[j].StartTime)
	})

	c.logger.Info("checking contests for solution videos", zap.Int("count", len(contests)))
	for _, contest := range contests {
		c.check(ctx, contest)
	}
	return nil
}

func (c *Checker) check(ctx context.Context, contest models.Contest) {
	log := c.logger.With(
		zap.String("title", contest.Title), zap.String("platform", contest.Platform))

	playlistID := c.playlists[contest.Platform]
	if playlistID == "" {
		log.Warn("no solution playlist configured for platform")
		return
	}

	matcher, ok := MatcherFor(contest.Platform)
	if !ok {
		log.Warn("no matcher for platform")
		return
	}
	target, ok := matcher.ExtractTarget(contest.Title)
	if !ok {
		log.Warn("could not extract contest target from title")
		return
	}

	videos, err := c.source.PlaylistVideos(ctx, playlistID)
	if err != nil {
		log.Error("fetching playlist videos failed", zap.Error(err))
		return
	}
	if len(videos) == 0 {
		log.Warn("playlist returned no videos")
		return
	}

	// Newest first, so the first hit is also the most recently published.
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].PublishedAt.After(videos[j].PublishedAt)
	})

	for _, video := range videos {
		if !matcher.Matches(target, video.Title) {
			continue
		}
		if err := c.store.SetSolutionLink(ctx, contest.ID, video.Link); err != nil {
			log.Error("storing solution link failed", zap.Error(err))
			return
		}
		log.Info("attached solution link", zap.String("link", video.Link))
		return
	}

	log.Info("no matching solution video found")
}

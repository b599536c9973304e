package solutions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const maxPlaylistResults = 100

// Video is a solution-video candidate. Titles are lower-cased at the
// source so matching never has to think about case.
type Video struct {
	Title       string
	Link        string
	PublishedAt time.Time
}

// VideoSource yields the candidate videos of a solution playlist.
type VideoSource interface {
	PlaylistVideos(ctx context.Context, playlistID string) ([]Video, error)
}

// YouTubeSource reads playlist items through the YouTube Data API.
type YouTubeSource struct {
	svc    *youtube.Service
	logger *zap.Logger
}

func NewYouTubeSource(ctx context.Context, apiKey string, logger *zap.Logger) (*YouTubeSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}
	return &YouTubeSource{svc: svc, logger: logger}, nil
}

func (s *YouTubeSource) PlaylistVideos(ctx context.Context, playlistID string) ([]Video, error) {
	resp, err := s.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(maxPlaylistResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("listing playlist %s: %w", playlistID, err)
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			continue
		}
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			s.logger.Warn("skipping video with bad publish date",
				zap.String("title", item.Snippet.Title))
			continue
		}
		videos = append(videos, Video{
			Title:       strings.ToLower(item.Snippet.Title),
			Link:        "https://www.youtube.com/watch?v=" + item.Snippet.ResourceId.VideoId,
			PublishedAt: publishedAt,
		})
	}
	return videos, nil
}

package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Jobs is what the scheduler invokes; the core components themselves own
// no timers, so they stay directly testable.
type Jobs interface {
	Ingest(ctx context.Context)
	CheckSolutions(ctx context.Context)
}

// Scheduler owns the periodic triggers: a nightly full refresh, a
// 6-hourly contest refresh, and a 14-minute self-ping that keeps hosting
// infra from idling the process out.
type Scheduler struct {
	cron      *cron.Cron
	jobs      Jobs
	serverURL string
	client    *http.Client
	logger    *zap.Logger
}

func New(jobs Jobs, serverURL string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:      cron.New(),
		jobs:      jobs,
		serverURL: serverURL,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 22 * * *", func() {
		s.logger.Info("running nightly contest and solution refresh")
		ctx := context.Background()
		s.jobs.Ingest(ctx)
		s.jobs.CheckSolutions(ctx)
	}); err != nil {
		return fmt.Errorf("scheduling nightly refresh: %w", err)
	}

	if _, err := s.cron.AddFunc("0 */6 * * *", func() {
		s.logger.Info("running 6-hourly contest refresh")
		s.jobs.Ingest(context.Background())
	}); err != nil {
		return fmt.Errorf("scheduling 6-hourly refresh: %w", err)
	}

	if _, err := s.cron.AddFunc("*/14 * * * *", s.pingHealth); err != nil {
		return fmt.Errorf("scheduling health ping: %w", err)
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) pingHealth() {
	resp, err := s.client.Get(s.serverURL + "/api/health")
	if err != nil {
		s.logger.Error("health self-ping failed", zap.Error(err))
		return
	}
	resp.Body.Close()
	s.logger.Info("health self-ping", zap.Int("status", resp.StatusCode))
}

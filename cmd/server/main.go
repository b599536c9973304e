package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"contest-compass/internal/aggregator"
	"contest-compass/internal/config"
	"contest-compass/internal/contests"
	"contest-compass/internal/ingest"
	"contest-compass/internal/models"
	"contest-compass/internal/notify"
	"contest-compass/internal/pkg"
	"contest-compass/internal/platforms"
	"contest-compass/internal/repository"
	"contest-compass/internal/scheduler"
	"contest-compass/internal/solutions"
)

type jobs struct {
	ingestor *ingest.Ingestor
	checker  *solutions.Checker
	logger   *zap.Logger
}

func (j *jobs) Ingest(ctx context.Context) {
	if _, err := j.ingestor.Run(ctx); err != nil {
		j.logger.Error("ingestion cycle failed", zap.Error(err))
	}
	j.ingestor.SweepPast(ctx, time.Now())
}

func (j *jobs) CheckSolutions(ctx context.Context) {
	if j.checker == nil {
		j.logger.Warn("solution matching disabled, skipping check")
		return
	}
	if err := j.checker.Run(ctx); err != nil {
		j.logger.Error("solution check failed", zap.Error(err))
	}
}

func main() {
	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.Contest{}); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	repo := repository.NewRepository(db)

	fetchers := []platforms.Fetcher{
		platforms.NewLeetCodeFetcher(cfg.LeetCodeBaseURL, logger),
		platforms.NewCodeforcesFetcher(cfg.CodeforcesBaseURL, logger),
		platforms.NewCodeChefFetcher(cfg.CodeChefBaseURL, logger),
	}
	agg := aggregator.New(fetchers, logger)
	ingestor := ingest.New(agg, repo, logger)

	ctx := context.Background()

	var checker *solutions.Checker
	if cfg.YouTubeAPIKey != "" {
		source, err := solutions.NewYouTubeSource(ctx, cfg.YouTubeAPIKey, logger)
		if err != nil {
			logger.Fatal("failed to create youtube source", zap.Error(err))
		}
		checker = solutions.NewChecker(repo, source, cfg.Playlists, logger)
	} else {
		logger.Warn("YOUTUBE_API_KEY not set, solution matching disabled")
	}

	background := &jobs{ingestor: ingestor, checker: checker, logger: logger}

	router := gin.Default()
	router.Use(cors.Default())
	router.Use(pkg.RequestLogger(logger))

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to access database handle", zap.Error(err))
	}
	ping := func(ctx context.Context) error { return sqlDB.PingContext(ctx) }

	handler := contests.NewHandler(repo, ingestor, ping)
	handler.Register(router)

	if cfg.BotToken != "" {
		bot, err := notify.NewTelegramBot(cfg.BotToken, repo, logger)
		if err != nil {
			logger.Fatal("failed to create telegram bot", zap.Error(err))
		}
		go func() {
			logger.Info("telegram bot starting")
			if err := bot.Start(); err != nil {
				logger.Error("telegram bot stopped", zap.Error(err))
			}
		}()
	}

	sched := scheduler.New(background, cfg.ServerURL, logger)
	if err := sched.Start(); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	// First boot against an empty store: fill it right away instead of
	// waiting for the next cron tick.
	go func() {
		count, err := repo.CountContests(ctx)
		if err != nil {
			logger.Error("checking contest count failed", zap.Error(err))
			return
		}
		if count > 0 {
			logger.Info("store already populated, skipping initial fetch", zap.Int64("count", count))
			return
		}
		logger.Info("store empty, running initial fetch")
		background.Ingest(ctx)
		background.CheckSolutions(ctx)
	}()

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/keiri-app/keiri/internal/app"
	"github.com/keiri-app/keiri/internal/masterdata"
	"github.com/keiri-app/keiri/internal/platform/db"
	"github.com/keiri-app/keiri/internal/report"
	"github.com/keiri-app/keiri/jobs"
)

// masterdataSource adapts the masterdata service onto the report engine's
// Masterdata contract.
type masterdataSource struct {
	svc *masterdata.Service
}

func (m masterdataSource) Rates(ctx context.Context, year int) (report.Rates, error) {
	rates, err := m.svc.Rates(ctx, year)
	if err != nil {
		return report.Rates{}, err
	}
	return report.Rates{Bonus: rates.Bonus, Tax: rates.Tax}, nil
}

func (m masterdataSource) SalaryKindID(ctx context.Context) (int64, error) {
	return m.svc.SalaryKindID(ctx)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	reportCache := report.NewCache(redisClient, cfg.ReportCacheTTL)
	masterService := masterdata.NewService(masterdata.NewRepository(pool))
	reportService := report.NewService(
		report.NewRepository(pool),
		masterdataSource{svc: masterService},
		reportCache,
	)

	warmupJob := jobs.NewReportWarmupJob(reportService, logger, nil)
	bumpJob := jobs.NewReportCacheBumpJob(reportCache, logger)

	warmupTask, err := jobs.NewReportWarmupTask(jobs.ReportWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskReportWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskReportCacheBump, Handler: bumpJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 5 * * *", Task: warmupTask},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker")
	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

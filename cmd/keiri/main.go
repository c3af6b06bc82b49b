package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/text/language"

	"github.com/keiri-app/keiri/internal/app"
	"github.com/keiri-app/keiri/internal/masterdata"
	"github.com/keiri-app/keiri/internal/platform/cache"
	"github.com/keiri-app/keiri/internal/platform/db"
	"github.com/keiri-app/keiri/internal/report"
	reporthttp "github.com/keiri-app/keiri/internal/report/http"
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

	var reportCache *report.Cache
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, serving reports uncached", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		reportCache = report.NewCache(redisClient, cfg.ReportCacheTTL)
		if err := reportCache.ListenForInvalidation(ctx, ""); err != nil {
			logger.Warn("cache invalidation listener", slog.Any("error", err))
		}
	}

	masterService := masterdata.NewService(masterdata.NewRepository(pool))

	var opts []report.Option
	if cfg.ReportCollation != "" {
		tag, err := language.Parse(cfg.ReportCollation)
		if err != nil {
			logger.Error("parse report collation", slog.String("value", cfg.ReportCollation), slog.Any("error", err))
			os.Exit(1)
		}
		opts = append(opts, report.WithCollation(tag))
	}
	reportService := report.NewService(
		report.NewRepository(pool),
		masterdataSource{svc: masterService},
		reportCache,
		opts...,
	)
	reportHandler := reporthttp.NewHandler(logger, reportService)

	var jobHandler *jobs.Handler
	if redisClient != nil {
		inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		jobHandler = jobs.NewHandler(inspector, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		ReportHandler: reportHandler,
		JobHandler:    jobHandler,
		Pool:          pool,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/keiri-app/keiri/internal/jobs"
	"github.com/keiri-app/keiri/internal/report"
	"github.com/keiri-app/keiri/internal/shared"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

var allDimensions = []report.Dimension{
	report.DimensionDivision,
	report.DimensionCompany,
	report.DimensionCustomer,
}

// ReportWarmupJob pre-builds grouped reports so the first dashboard hit of the
// day is served from cache.
type ReportWarmupJob struct {
	Reports *report.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(reports *report.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportWarmupJob {
	return &ReportWarmupJob{
		Reports: reports,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes report warmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	year := payload.Year
	if year == 0 {
		year = j.clock().Year()
	}
	dims := allDimensions
	if len(payload.Dimensions) > 0 {
		dims = make([]report.Dimension, 0, len(payload.Dimensions))
		for _, raw := range payload.Dimensions {
			dim, err := report.ParseDimension(raw)
			if err != nil {
				return asynq.SkipRetry
			}
			dims = append(dims, dim)
		}
	}
	months := make([]int, 0, shared.MaxMonth)
	for m := shared.MinMonth; m <= shared.MaxMonth; m++ {
		months = append(months, m)
	}

	tracker := j.metrics().Track(TaskReportWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.Int("year", year))
	logger.Info("starting report warmup")

	for _, dim := range dims {
		if _, err := j.Reports.Build(ctx, report.Query{Dimension: dim, Year: year, Months: months}); err != nil {
			resultErr = err
			logger.Error("warm report", slog.String("dimension", string(dim)), slog.Any("error", err))
			return resultErr
		}
		j.metrics().AddWarmedReports(string(dim), 1)
	}
	logger.Info("report warmup finished", slog.Int("dimensions", len(dims)))
	return nil
}

func (j *ReportWarmupJob) metrics() *jobmetrics.Metrics {
	if j != nil && j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j != nil && j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

// ReportCacheBumpJob invalidates cached reports after upstream postings.
type ReportCacheBumpJob struct {
	Cache  *report.Cache
	Logger *slog.Logger
}

// NewReportCacheBumpJob wires the bump handler.
func NewReportCacheBumpJob(cache *report.Cache, logger *slog.Logger) *ReportCacheBumpJob {
	return &ReportCacheBumpJob{Cache: cache, Logger: logger}
}

// Handle processes cache bump tasks.
func (j *ReportCacheBumpJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil {
		return errors.New("report cache bump: handler not configured")
	}
	if err := j.Cache.Bump(ctx); err != nil {
		if j.Logger != nil {
			j.Logger.Error("bump report cache", slog.Any("error", err))
		}
		return err
	}
	return nil
}

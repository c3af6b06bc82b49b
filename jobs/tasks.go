package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportWarmup pre-builds grouped reports into the cache.
	TaskReportWarmup = "report:warmup"
	// TaskReportCacheBump invalidates cached reports after upstream postings.
	TaskReportCacheBump = "report:bump"
)

// ReportWarmupPayload selects which reports the warmup pass should build.
// An empty dimension list means all dimensions; a zero year means the
// current year.
type ReportWarmupPayload struct {
	Dimensions []string `json:"dimensions,omitempty"`
	Year       int      `json:"year,omitempty"`
}

// NewReportWarmupTask constructs an Asynq task for a warmup pass.
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}

// NewReportCacheBumpTask constructs an Asynq task invalidating report caches.
func NewReportCacheBumpTask() *asynq.Task {
	return asynq.NewTask(TaskReportCacheBump, nil)
}

package jobs

import (
	"context"

	"github.com/wonny/ledger/internal/dataset"
	"github.com/wonny/ledger/pkg/logger"
)

// DefaultReloadSchedule refreshes the document every 10 minutes
const DefaultReloadSchedule = "0 */10 * * * *"

// DatasetReloadJob re-reads the company document on a schedule
type DatasetReloadJob struct {
	refresher *dataset.Refresher
	schedule  string
	logger    *logger.Logger
}

// NewDatasetReloadJob creates a new reload job
func NewDatasetReloadJob(refresher *dataset.Refresher, schedule string, log *logger.Logger) *DatasetReloadJob {
	if schedule == "" {
		schedule = DefaultReloadSchedule
	}
	return &DatasetReloadJob{
		refresher: refresher,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name
func (j *DatasetReloadJob) Name() string {
	return "dataset_reload"
}

// Schedule returns the cron schedule
func (j *DatasetReloadJob) Schedule() string {
	return j.schedule
}

// Run reloads the document. A cached remote copy is reused until it expires.
func (j *DatasetReloadJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled dataset reload")

	n, err := j.refresher.Refresh(ctx, false)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"companies": n,
		"source":    j.refresher.Source().Describe(),
	}).Info("Dataset reload completed")

	return nil
}

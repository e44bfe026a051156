package jobs

import (
	"fmt"
	"log/slog"

	"parcelflow/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	geocodeBackfillJob *GeocodeBackfillJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	geocodeRecipientsHandler commands.GeocodeRecipientsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		geocodeBackfillJob: NewGeocodeBackfillJob(geocodeRecipientsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.geocodeBackfillJob.Start(); err != nil {
		return fmt.Errorf("failed to start geocode backfill job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.geocodeBackfillJob.Stop()
}

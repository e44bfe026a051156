package jobs

import (
	"context"
	"errors"
	"log/slog"

	"parcelflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// geocodeBatchSize caps how many recipients one backfill pass processes.
const geocodeBatchSize = 25

// GeocodeBackfillJob periodically geocodes recipient addresses that have no
// coordinates yet. Recipients without coordinates never show up in
// nearby-delivery ranking, so the job keeps that gap shrinking.
type GeocodeBackfillJob struct {
	handler commands.GeocodeRecipientsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewGeocodeBackfillJob creates a job that runs a geocode backfill pass every minute.
func NewGeocodeBackfillJob(handler commands.GeocodeRecipientsCommandHandler, logger *slog.Logger) *GeocodeBackfillJob {
	return &GeocodeBackfillJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "geocode_backfill_job"),
	}
}

// Start begins the geocode backfill job to run every minute.
func (j *GeocodeBackfillJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewGeocodeRecipientsCommand(geocodeBatchSize)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Geocode backfill command construction failed", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty backlog is the steady state, not a failure
			if !errors.Is(err, commands.ErrNoRecipientsToGeocode) {
				j.logger.ErrorContext(ctx, "Geocode backfill job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Geocode backfill job started (running every minute)")
	return nil
}

// Stop stops the geocode backfill job.
func (j *GeocodeBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Geocode backfill job stopped")
}

// Package jobs provides scheduled background tasks for the delivery backend.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the request path cannot do inline.
//
// # Available Jobs
//
// 1. GeocodeBackfillJob - Runs every minute to geocode recipient addresses
// that are missing coordinates, so they become eligible for nearby-delivery
// ranking.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(geocodeRecipientsHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The backfill job treats an empty backlog (ErrNoRecipientsToGeocode) as the
// steady state and stays quiet; every other error is logged. Failures on a
// single address skip that recipient and leave it in the backlog for the next
// pass.
package jobs

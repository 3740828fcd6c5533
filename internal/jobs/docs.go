// Package jobs provides scheduled background tasks for the order registry.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance required for the registration workflow.
//
// # Available Jobs
//
// 1. StalledOrdersJob - Runs every minute to mark orders stuck in Received
// status as Error, recording registrations that crashed mid-flight.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(failStalledOrdersHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep logs failures and keeps its schedule; a failed run is retried on
// the next tick. Failed job starts stop any already running jobs.
package jobs

// Package jobs provides scheduled background tasks for the buffet order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field form with a leading seconds field.
//
// # Available Jobs
//
// 1. OrderBacklogJob - Counts orders per status, publishes the counts as
// Prometheus gauges and logs the kitchen backlog (pending, preparing and
// ready orders). Runs every minute unless BACKLOG_JOB_SCHEDULE says otherwise.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(summaryHandler, metrics, cfg.BacklogJobSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged and the previous gauge values stay in place.
// A job that cannot be scheduled (for example an invalid cron expression)
// makes StartAll fail.
package jobs

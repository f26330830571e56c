// Package jobs provides scheduled background tasks for the load board.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the request path cannot cover.
//
// # Available Jobs
//
// 1. StaleOrderJob - Runs every minute to cancel orders that stayed open
// for bidding past their time-to-live
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cancelStaleOrdersHandler, staleOrderTTL, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep command claims each stale order with a conditional update, so a
// sweep racing a merchant's accept simply skips the contested order. Sweep
// failures are logged and retried on the next tick.
package jobs

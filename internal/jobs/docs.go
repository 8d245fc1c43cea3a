// Package jobs provides scheduled background tasks for the courier back office.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. VoucherAuditJob - compares each voucher counter with the vouchers issued for
// its key and logs keys with reserved-but-unissued numbers (info) or vouchers
// numbered above their counter (error). It only reads.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(auditHandler, cfg.VoucherAuditSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("Failed to start jobs", zap.Error(err))
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron format with seconds. The default
// "0 */15 * * * *" runs the audit every 15 minutes.
package jobs

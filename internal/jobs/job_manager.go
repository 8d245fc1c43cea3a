package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	voucherAuditJob *VoucherAuditJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(auditor SequenceAuditor, voucherAuditSchedule string, log *zap.Logger) *JobManager {
	return &JobManager{
		voucherAuditJob: NewVoucherAuditJob(auditor, voucherAuditSchedule, log),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.voucherAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start voucher audit job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.voucherAuditJob.Stop()
}

package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"courierdesk/internal/core/application/usecases/queries"
	"courierdesk/internal/pkg/logger"
)

// DefaultVoucherAuditSchedule runs the audit every 15 minutes (cron with seconds).
const DefaultVoucherAuditSchedule = "0 */15 * * * *"

const voucherAuditTimeout = 30 * time.Second

type SequenceAuditor interface {
	Handle(
		ctx context.Context,
		query queries.AuditVoucherSequencesQuery,
	) ([]queries.AuditVoucherSequencesQueryResponse, error)
}

// VoucherAuditJob compares every voucher counter with the vouchers stored for its key.
// It never changes data: gaps are expected for numbers reserved without a voucher,
// a voucher above its counter is reported as an error.
type VoucherAuditJob struct {
	auditor  SequenceAuditor
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewVoucherAuditJob creates the job. An empty schedule means DefaultVoucherAuditSchedule.
func NewVoucherAuditJob(auditor SequenceAuditor, schedule string, log *zap.Logger) *VoucherAuditJob {
	if schedule == "" {
		schedule = DefaultVoucherAuditSchedule
	}
	return &VoucherAuditJob{
		auditor:  auditor,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.Component(log, "voucher_audit_job"),
	}
}

// Start registers the audit on its schedule and starts the scheduler.
func (j *VoucherAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), voucherAuditTimeout)
		defer cancel()

		if err := j.Run(ctx); err != nil {
			j.logger.Error("Voucher audit job failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Voucher audit job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs one audit pass.
func (j *VoucherAuditJob) Run(ctx context.Context) error {
	report, err := j.auditor.Handle(ctx, queries.NewAuditVoucherSequencesQuery())
	if err != nil {
		return err
	}

	var inconsistent int
	for _, item := range report {
		fields := []zap.Field{
			zap.String("key", item.Key),
			zap.Int64("current_sequence", item.CurrentSequence),
			zap.Int64("issued", item.IssuedCount),
			zap.Int64("max_issued", item.MaxIssued),
			zap.Int64("unissued", item.Unissued),
		}
		switch {
		case item.Inconsistent:
			inconsistent++
			j.logger.Error("voucher counter is behind issued vouchers", fields...)
		case item.Unissued > 0:
			j.logger.Info("voucher numbers reserved without a voucher", fields...)
		}
	}

	j.logger.Debug("voucher audit finished", zap.Int("keys", len(report)), zap.Int("inconsistent", inconsistent))
	return nil
}

// Stop stops the scheduler and waits for a running audit to finish.
func (j *VoucherAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Voucher audit job stopped")
}

package order

import (
	"context"
	"time"

	"bookstore/domain/order"
	"bookstore/domain/user"
	"bookstore/pkg/clock"
	"bookstore/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AbandonedOrdersJob abandons NEW orders whose payment period has run out.
// Each order goes through the regular status update as the system
// principal, so the abandoned order credits its stock back exactly like a
// cancellation would.
type AbandonedOrdersJob struct {
	orderRepo     order.Repository
	manipulate    *ManipulateService
	paymentPeriod time.Duration
	clock         clock.Clock
}

// NewAbandonedOrdersJob creates the abandonment job.
func NewAbandonedOrdersJob(
	orderRepo order.Repository,
	manipulate *ManipulateService,
	paymentPeriod time.Duration,
	clk clock.Clock,
) *AbandonedOrdersJob {
	return &AbandonedOrdersJob{
		orderRepo:     orderRepo,
		manipulate:    manipulate,
		paymentPeriod: paymentPeriod,
		clock:         clk,
	}
}

// Schedule registers the job with the scheduler under the given cron
// expression. The expression uses six fields, seconds first.
func (j *AbandonedOrdersJob) Schedule(scheduler *cron.Cron, spec string) error {
	_, err := scheduler.AddJob(spec, j)
	return err
}

// Run is the cron entry point.
func (j *AbandonedOrdersJob) Run() {
	if _, err := j.Sweep(context.Background()); err != nil {
		logger.Error("Abandoned orders sweep failed", zap.Error(err))
	}
}

// Sweep abandons every NEW order created at or before now minus the
// payment period. A failure on one order is logged and the sweep moves on;
// the order stays NEW and the next run retries it. Returns the number of
// orders abandoned.
func (j *AbandonedOrdersJob) Sweep(ctx context.Context) (int, error) {
	cutoff := j.clock.Now().Add(-j.paymentPeriod)
	stale, err := j.orderRepo.FindByStatusAndCreatedAtBefore(ctx, order.StatusNew, cutoff)
	if err != nil {
		return 0, err
	}

	abandoned := 0
	for _, o := range stale {
		if _, err := j.manipulate.updateStatus(ctx, user.SystemPrincipal(), o.ID(), order.StatusAbandoned); err != nil {
			logger.Warn("Failed to abandon order",
				zap.String("order_id", o.ID()),
				zap.Error(err),
			)
			continue
		}
		abandoned++
	}

	if abandoned > 0 {
		logger.Info("Abandoned stale orders",
			zap.Int("count", abandoned),
			zap.Time("cutoff", cutoff),
		)
	}
	return abandoned, nil
}

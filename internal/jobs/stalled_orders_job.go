package jobs

import (
	"context"
	"time"

	"orderregistry/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// stalledOrderAge is how long an order may sit in Received status before the
// sweep marks it as Error. Long enough that no live registration transaction
// is still holding the row.
const stalledOrderAge = 5 * time.Minute

// StalledOrdersJob periodically fails orders whose registration never
// finished. A crash between the order insert and the status update leaves a
// row in Received status forever; the sweep records the failed attempt.
type StalledOrdersJob struct {
	handler commands.FailStalledOrdersCommandHandler
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewStalledOrdersJob creates a job that sweeps stalled orders once a minute.
func NewStalledOrdersJob(handler commands.FailStalledOrdersCommandHandler, logger *zap.Logger) *StalledOrdersJob {
	return &StalledOrdersJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With(zap.String("component", "stalled_orders_job")),
	}
}

// Start schedules the sweep to run at the top of every minute.
func (j *StalledOrdersJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewFailStalledOrdersCommand(stalledOrderAge)
		if cmdErr != nil {
			j.logger.Error("failed to build stalled orders command", zap.Error(cmdErr))
			return
		}

		swept, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.Error("stalled orders sweep failed", zap.Error(handleErr))
			return
		}

		if swept > 0 {
			j.logger.Warn("stalled orders marked as failed", zap.Int("count", swept))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("stalled orders job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *StalledOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.Info("stalled orders job stopped")
}

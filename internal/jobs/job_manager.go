package jobs

import (
	"fmt"

	"orderregistry/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	stalledOrdersJob *StalledOrdersJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	failStalledOrdersHandler commands.FailStalledOrdersCommandHandler,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		stalledOrdersJob: NewStalledOrdersJob(failStalledOrdersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.stalledOrdersJob.Start(); err != nil {
		return fmt.Errorf("failed to start stalled orders job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stalledOrdersJob.Stop()
}

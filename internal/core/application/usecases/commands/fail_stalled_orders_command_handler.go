package commands

import (
	"context"
	"time"
)

// stalledOrderMessage is recorded on orders the sweep marks as Error.
const stalledOrderMessage = "order processing interrupted"

// FailStalledOrdersCommandHandler marks long-stalled Received orders as Error
// within a single transaction. Used by the background sweep job.
type FailStalledOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewFailStalledOrdersCommandHandler creates a handler for the stalled-order sweep.
func NewFailStalledOrdersCommandHandler(uowFactory OrderUoWFactory) FailStalledOrdersCommandHandler {
	return FailStalledOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks every Received order older than the command's threshold as
// Error and returns how many orders were swept.
func (h *FailStalledOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd FailStalledOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	stalled, err := repo.GetAllInReceivedStatus(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-cmd.OlderThan())
	swept := 0
	for _, o := range stalled {
		if !o.CreatedAt().Before(cutoff) {
			continue
		}

		o.MarkError(stalledOrderMessage)
		if err = repo.Update(ctx, o); err != nil {
			return 0, err
		}
		swept++
	}

	if swept == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return swept, nil
}

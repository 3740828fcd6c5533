package commands

import (
	"errors"
	"fmt"
	"time"

	"orderregistry/internal/pkg/errs"
	"orderregistry/internal/pkg/guard"
)

var (
	ErrFailStalledOrdersCommandIsNotConstructed = errors.New(
		"FailStalledOrdersCommand must be created via NewFailStalledOrdersCommand constructor",
	)
)

// FailStalledOrdersCommand requests that orders stuck in Received status for
// longer than the given age be marked Error. An order only stays in Received
// when a registration crashed between its insert and the Processed update, so
// sweeping them records the failed attempt without losing the row.
type FailStalledOrdersCommand struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewFailStalledOrdersCommand creates the sweep command.
// The age threshold must be positive; orders younger than it may still be
// inside a live transaction.
func NewFailStalledOrdersCommand(olderThan time.Duration) (FailStalledOrdersCommand, error) {
	if olderThan <= 0 {
		return FailStalledOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"olderThan",
			fmt.Errorf("%s is not greater than 0", olderThan),
		)
	}

	return FailStalledOrdersCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FailStalledOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFailStalledOrdersCommandIsNotConstructed)
}

// OlderThan returns the minimum age for an order to be considered stalled.
func (c FailStalledOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}

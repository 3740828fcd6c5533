// Package commands contains business operations that modify system state.
// Implements the command side of the CQRS split: every command follows the
// same pattern of validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderregistry/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions keep the write path atomic across repository calls.
type (
	// TxManager handles the database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a fresh unit of work per command execution.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

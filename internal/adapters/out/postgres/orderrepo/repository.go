package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"orderregistry/internal/core/domain/model/kernel"
	"orderregistry/internal/core/domain/model/order"
	"orderregistry/internal/core/ports"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its line items to the database.
// A unique index violation on the external id is reported as
// ports.ErrUniquenessViolation so the workflow can convert a lost insert race
// into a duplicate conflict. Requires TranslateError enabled on the GORM
// connection.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("insert order %s: %w", aggregate.ExternalID(), ports.ErrUniquenessViolation)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order's state to the database. Only the orders row
// is touched; line items are immutable after the insert.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_id = ?", dto.OrderID).
		Updates(map[string]any{
			"status":        dto.Status,
			"processed_at":  dto.ProcessedAt,
			"total_amount":  dto.TotalAmount,
			"error_message": dto.ErrorMessage,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("update order %s: %w", aggregate.ExternalID(), ports.ErrUniquenessViolation)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by its business identifier.
// Returns (nil, nil) when no such order exists.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, "order_id = ?", id.Bytes())
}

// GetByExternalID retrieves an order by its external correlation id.
// Returns (nil, nil) when no such order exists.
func (r *GormOrderRepository) GetByExternalID(ctx context.Context, externalID string) (*order.Order, error) {
	return r.getOne(ctx, "external_id = ?", externalID)
}

// GetByFingerprint retrieves an order whose content digest matches.
// Returns (nil, nil) when no such order exists; when several orders share a
// fingerprint the earliest insert wins.
func (r *GormOrderRepository) GetByFingerprint(
	ctx context.Context, fingerprint order.Fingerprint,
) (*order.Order, error) {
	return r.getOne(ctx, "fingerprint = ?", fingerprint.String())
}

// GetAll retrieves every registered order, oldest first.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.getMany(ctx, nil)
}

// GetAllInReceivedStatus retrieves orders still awaiting processing.
// Used by the stalled-order sweep.
func (r *GormOrderRepository) GetAllInReceivedStatus(ctx context.Context) ([]*order.Order, error) {
	return r.getMany(ctx, []any{"status = ?", int(order.Received)})
}

func (r *GormOrderRepository) getOne(ctx context.Context, query string, arg any) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Products").
		First(&dto, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	o, err := toDomain(dto)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *GormOrderRepository) getMany(ctx context.Context, conds []any) ([]*order.Order, error) {
	var dtos []OrderDTO
	tx := r.db.WithContext(ctx).Preload("Products").Order("id")
	if err := tx.Find(&dtos, conds...).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

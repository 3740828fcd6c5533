package queries

import (
	"errors"
	"time"

	"orderregistry/internal/core/domain/model/kernel"
	"orderregistry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery retrieves registered orders with optional filters.
// When an order id is given it takes precedence over the external id; with
// neither filter the query returns every registered order.
//
// Example:
//
//	query, err := NewGetOrdersQuery(nil, "EXT-12345")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrdersQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get orders: %w", err)
//	}
//
//	fmt.Printf("Found %d orders\n", len(resp.Orders))
type GetOrdersQuery struct {
	orderID    *kernel.UUID
	externalID string

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an order retrieval query. Both filters are
// optional; a non-nil order id must be a constructed UUID.
func NewGetOrdersQuery(orderID *kernel.UUID, externalID string) (GetOrdersQuery, error) {
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		orderID:    orderID,
		externalID: externalID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the optional order id filter.
func (q GetOrdersQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// ExternalID returns the optional external id filter. Empty means unset.
func (q GetOrdersQuery) ExternalID() string {
	return q.externalID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// GetOrdersResponse carries the query outcome. Success stays true when no
// order matches the filters; the Orders slice is simply empty.
type GetOrdersResponse struct {
	Success bool
	Message string
	Orders  []OrderResponse
}

// OrderResponse is the read model for a single registered order.
type OrderResponse struct {
	OrderID      kernel.UUID
	ExternalID   string
	Status       string
	CreatedAt    time.Time
	ProcessedAt  *time.Time
	TotalAmount  decimal.Decimal
	ErrorMessage string
	Products     []ProductResponse
}

// ProductResponse is the read model for an order line item.
type ProductResponse struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

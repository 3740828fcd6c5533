// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"orderregistry/internal/core/domain/model/kernel"
	"orderregistry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The surrogate integer key exists only for storage; the business identity is
// the OrderID column. ExternalID carries the unique index that enforces the
// hard duplicate rule at the database level.
type OrderDTO struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"`
	OrderID      uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	ExternalID   string          `gorm:"uniqueIndex"`
	Status       int             `gorm:"index"`
	CreatedAt    time.Time       ``
	ProcessedAt  *time.Time      ``
	TotalAmount  decimal.Decimal `gorm:"type:decimal(19,4)"`
	Fingerprint  string          `gorm:"index"`
	ErrorMessage *string         ``
	Products     []ProductDTO    `gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ProductDTO represents an order line item row. Line items are immutable
// after the order insert; updates only ever touch the orders table.
type ProductDTO struct {
	ID       uint            `gorm:"primaryKey;autoIncrement"`
	OrderRef uint            `gorm:"column:order_id;index"`
	Name     string          ``
	Price    decimal.Decimal `gorm:"type:decimal(19,4)"`
	Quantity int             ``
}

// TableName specifies the database table name for line items.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts an order aggregate to its database representation.
// The surrogate key is left zero; GORM assigns it on insert.
func fromDomain(o *order.Order) OrderDTO {
	products := o.Products()
	productDTOs := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		productDTOs = append(productDTOs, ProductDTO{
			Name:     p.Name(),
			Price:    p.Price().Amount(),
			Quantity: p.Quantity(),
		})
	}

	var errorMessage *string
	if msg := o.ErrorMessage(); msg != "" {
		errorMessage = &msg
	}

	return OrderDTO{
		OrderID:      o.ID().Bytes(),
		ExternalID:   o.ExternalID(),
		Status:       int(o.Status()),
		CreatedAt:    o.CreatedAt(),
		ProcessedAt:  o.ProcessedAt(),
		TotalAmount:  o.TotalAmount().Amount(),
		Fingerprint:  o.Fingerprint().String(),
		ErrorMessage: errorMessage,
		Products:     productDTOs,
	}
}

// toDomain converts a database DTO to an order aggregate.
// Reconstructs the complete aggregate including line items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	products := make([]*order.Product, 0, len(dto.Products))
	for _, p := range dto.Products {
		price, priceErr := kernel.NewMoney(p.Price)
		if priceErr != nil {
			return nil, priceErr
		}

		product, productErr := order.NewProduct(p.Name, price, p.Quantity)
		if productErr != nil {
			return nil, productErr
		}
		products = append(products, product)
	}

	totalAmount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	fingerprint, err := order.FingerprintFromString(dto.Fingerprint)
	if err != nil {
		return nil, err
	}

	errorMessage := ""
	if dto.ErrorMessage != nil {
		errorMessage = *dto.ErrorMessage
	}

	return order.RestoreOrder(
		id,
		dto.ExternalID,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.ProcessedAt,
		totalAmount,
		errorMessage,
		fingerprint,
		products,
	)
}

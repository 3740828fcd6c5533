package queries

import (
	"context"
	"fmt"
	"time"

	"orderregistry/internal/core/domain/model/kernel"
	"orderregistry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves registered orders from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetOrdersQueryHandler(db)
//	query, _ := NewGetOrdersQuery(nil, "")
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get orders: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d orders\n", len(resp.Orders))
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query and returns matching orders with their line
// items. An absent order is not an error: the response stays successful with
// an empty Orders slice.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) (GetOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersResponse{}, err
	}

	where := ""
	args := make([]any, 0, 1)
	switch {
	case query.OrderID() != nil:
		where = "WHERE o.order_id = ?"
		args = append(args, query.OrderID().Bytes())
	case query.ExternalID() != "":
		where = "WHERE o.external_id = ?"
		args = append(args, query.ExternalID())
	}

	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			o.id,
			o.order_id,
			o.external_id,
			o.status,
			o.created_at,
			o.processed_at,
			o.total_amount,
			o.error_message,
			p.name,
			p.price,
			p.quantity
		FROM orders o
		LEFT JOIN products p ON p.order_id = o.id
		%s
		ORDER BY o.id, p.id
	`, where), args...).Rows()
	if err != nil {
		return GetOrdersResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	var currentKey uint

	for rows.Next() {
		var (
			key          uint
			id           uuid.UUID
			status       int
			processedAt  *time.Time
			errorMessage *string
			productName  *string
			productPrice decimal.NullDecimal
			quantity     *int
		)

		var orderResp OrderResponse
		err = rows.Scan(
			&key,
			&id,
			&orderResp.ExternalID,
			&status,
			&orderResp.CreatedAt,
			&processedAt,
			&orderResp.TotalAmount,
			&errorMessage,
			&productName,
			&productPrice,
			&quantity,
		)
		if err != nil {
			return GetOrdersResponse{}, err
		}

		if len(orders) == 0 || key != currentKey {
			orderID, idErr := kernel.UUIDFromBytes(id[:])
			if idErr != nil {
				return GetOrdersResponse{}, idErr
			}
			orderResp.OrderID = orderID
			orderResp.Status = order.Status(status).String()
			orderResp.ProcessedAt = processedAt
			if errorMessage != nil {
				orderResp.ErrorMessage = *errorMessage
			}
			orderResp.Products = make([]ProductResponse, 0)
			orders = append(orders, orderResp)
			currentKey = key
		}

		// NULL line item columns come from the left join on an order
		// without products, which the write side never produces.
		if productName != nil && productPrice.Valid && quantity != nil {
			last := &orders[len(orders)-1]
			last.Products = append(last.Products, ProductResponse{
				Name:     *productName,
				Price:    productPrice.Decimal,
				Quantity: *quantity,
			})
		}
	}

	if err = rows.Err(); err != nil {
		return GetOrdersResponse{}, err
	}

	return GetOrdersResponse{
		Success: true,
		Message: ordersMessage(query, len(orders)),
		Orders:  orders,
	}, nil
}

func ordersMessage(query GetOrdersQuery, count int) string {
	if query.OrderID() == nil && query.ExternalID() == "" {
		return fmt.Sprintf("retrieved %d orders", count)
	}
	if count == 0 {
		return "no orders found"
	}
	return "order retrieved successfully"
}

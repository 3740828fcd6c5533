package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderProcessedEventName is the discriminator carried by every processed
// event so subscribers can dispatch on the event kind without runtime type
// inspection.
const OrderProcessedEventName = "order.processed"

// OrderProcessedEvent is the tagged envelope published once per successful
// processing transition. It is a flat, serialization-ready snapshot of the
// order at the moment it became Processed.
type OrderProcessedEvent struct {
	EventName   string                `json:"eventName"`
	OrderID     string                `json:"orderId"`
	TotalAmount decimal.Decimal       `json:"totalAmount"`
	Status      string                `json:"status"`
	Products    []OrderProductPayload `json:"products"`
	Timestamp   time.Time             `json:"timestamp"`
}

// OrderProductPayload is the line-item summary embedded in the event.
type OrderProductPayload struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// NewOrderProcessedEvent builds the event envelope from a processed order.
func NewOrderProcessedEvent(o *Order) OrderProcessedEvent {
	products := make([]OrderProductPayload, 0, len(o.Products()))
	for _, p := range o.Products() {
		products = append(products, OrderProductPayload{
			Name:     p.Name(),
			Price:    p.Price().Amount(),
			Quantity: p.Quantity(),
		})
	}

	return OrderProcessedEvent{
		EventName:   OrderProcessedEventName,
		OrderID:     o.ID().String(),
		TotalAmount: o.TotalAmount().Amount(),
		Status:      o.Status().String(),
		Products:    products,
		Timestamp:   time.Now().UTC(),
	}
}

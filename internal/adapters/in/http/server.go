// Package http exposes the registration and query use cases over REST.
package http

import (
	"net/http"
	"time"

	"orderregistry/internal/core/application/usecases/commands"
	"orderregistry/internal/core/application/usecases/queries"
	"orderregistry/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	registerOrderHandler commands.RegisterOrderCommandHandler
	getOrdersHandler     queries.GetOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	registerOrderHandler commands.RegisterOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
) *Server {
	return &Server{
		registerOrderHandler: registerOrderHandler,
		getOrdersHandler:     getOrdersHandler,
	}
}

// RegisterRoutes attaches the order endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders/register-order", s.RegisterOrder)
	e.GET("/api/v1/orders/orders", s.GetOrders)
}

// RegisterOrderRequest is the payload for order registration.
type RegisterOrderRequest struct {
	ExternalID string           `json:"externalId"`
	Products   []ProductRequest `json:"products"`
}

// ProductRequest describes one line item in a registration request.
type ProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// RegisterOrderResponse is the registration outcome returned to the caller.
type RegisterOrderResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Reason  string      `json:"reason,omitempty"`
	OrderID *string     `json:"orderId,omitempty"`
	Order   *OrderModel `json:"order,omitempty"`
}

// GetOrdersResponse carries the retrieved orders.
type GetOrdersResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Orders  []OrderModel `json:"orders"`
}

// OrderModel is the wire representation of a registered order.
type OrderModel struct {
	OrderID      string          `json:"orderId"`
	ExternalID   string          `json:"externalId"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	ProcessedAt  *time.Time      `json:"processedAt,omitempty"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	Products     []ProductModel  `json:"products"`
}

// ProductModel is the wire representation of an order line item.
type ProductModel struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// ErrorResponse is returned for rejected or failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegisterOrder handles POST /api/v1/orders/register-order.
// Returns 201 on success, 400 for invalid input, 409 when the external id is
// already registered, and 500 when the workflow fails.
func (s *Server) RegisterOrder(ctx echo.Context) error {
	var request RegisterOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body",
		})
	}

	products := make([]commands.ProductData, 0, len(request.Products))
	for _, p := range request.Products {
		products = append(products, commands.ProductData{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
		})
	}

	cmd, err := commands.NewRegisterOrderCommand(request.ExternalID, products)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid order data: " + err.Error(),
		})
	}

	result, err := s.registerOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid order data: " + err.Error(),
		})
	}

	response := RegisterOrderResponse{
		Success: result.Success,
		Message: result.Message,
		Reason:  result.Reason,
	}
	if result.OrderID != nil {
		id := result.OrderID.String()
		response.OrderID = &id
	}
	if result.Order != nil {
		model := orderResultToModel(result.Order)
		response.Order = &model
	}

	switch {
	case result.Reason == commands.ReasonDuplicateExternalID:
		return ctx.JSON(http.StatusConflict, response)
	case !result.Success:
		return ctx.JSON(http.StatusInternalServerError, response)
	default:
		return ctx.JSON(http.StatusCreated, response)
	}
}

// GetOrders handles GET /api/v1/orders/orders with optional orderId and
// externalId query parameters. Returns 404 when nothing matches.
func (s *Server) GetOrders(ctx echo.Context) error {
	var orderID *kernel.UUID
	if raw := ctx.QueryParam("orderId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "invalid orderId: " + err.Error(),
			})
		}
		orderID = &id
	}

	query, err := queries.NewGetOrdersQuery(orderID, ctx.QueryParam("externalId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid query: " + err.Error(),
		})
	}

	result, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "failed to retrieve orders",
		})
	}

	response := GetOrdersResponse{
		Success: result.Success,
		Message: result.Message,
		Orders:  make([]OrderModel, 0, len(result.Orders)),
	}
	for i := range result.Orders {
		response.Orders = append(response.Orders, orderResponseToModel(&result.Orders[i]))
	}

	if len(response.Orders) == 0 {
		return ctx.JSON(http.StatusNotFound, response)
	}

	return ctx.JSON(http.StatusOK, response)
}

func orderResultToModel(result *commands.OrderResult) OrderModel {
	products := make([]ProductModel, 0, len(result.Products))
	for _, p := range result.Products {
		products = append(products, ProductModel{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
		})
	}

	return OrderModel{
		OrderID:      result.OrderID.String(),
		ExternalID:   result.ExternalID,
		Status:       result.Status,
		CreatedAt:    result.CreatedAt,
		ProcessedAt:  result.ProcessedAt,
		TotalAmount:  result.TotalAmount,
		ErrorMessage: result.ErrorMessage,
		Products:     products,
	}
}

func orderResponseToModel(resp *queries.OrderResponse) OrderModel {
	products := make([]ProductModel, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, ProductModel{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
		})
	}

	return OrderModel{
		OrderID:      resp.OrderID.String(),
		ExternalID:   resp.ExternalID,
		Status:       resp.Status,
		CreatedAt:    resp.CreatedAt,
		ProcessedAt:  resp.ProcessedAt,
		TotalAmount:  resp.TotalAmount,
		ErrorMessage: resp.ErrorMessage,
		Products:     products,
	}
}

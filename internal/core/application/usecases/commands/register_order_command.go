package commands

import (
	"errors"
	"fmt"
	"time"

	"orderregistry/internal/core/domain/model/kernel"
	"orderregistry/internal/pkg/errs"
	"orderregistry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrRegisterOrderCommandIsNotConstructed = errors.New(
		"RegisterOrderCommand must be created via NewRegisterOrderCommand constructor",
	)
)

// ReasonDuplicateExternalID is the machine-readable reason carried by the
// conflict result when an order with the same external id already exists.
const ReasonDuplicateExternalID = "duplicate-external-id"

// ProductData is the caller-supplied description of one line item.
type ProductData struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// RegisterOrderCommand represents a request to register a new order.
// Construction validates the whole request shape up front so the workflow
// never sees malformed input; every field violation is reported in one
// joined error.
//
// Example:
//
//	cmd, err := NewRegisterOrderCommand("EXT-1", []ProductData{
//	    {Name: "Widget", Price: decimal.NewFromFloat(10.00), Quantity: 2},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid registration request: %w", err)
//	}
type RegisterOrderCommand struct {
	externalID string
	products   []ProductData

	guard guard.ConstructorGuard
}

// NewRegisterOrderCommand creates a command to register an order.
// Validates that the external id is non-empty, at least one product is
// supplied, and every product has a non-empty name, a strictly positive
// price, and a strictly positive quantity.
func NewRegisterOrderCommand(externalID string, products []ProductData) (RegisterOrderCommand, error) {
	orderCommand := RegisterOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setExternalID(externalID),
		orderCommand.setProducts(products),
	); err != nil {
		return RegisterOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterOrderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOrderCommandIsNotConstructed)
}

// ExternalID returns the caller-supplied correlation id.
func (c RegisterOrderCommand) ExternalID() string {
	return c.externalID
}

// Products returns the requested line items.
func (c RegisterOrderCommand) Products() []ProductData {
	products := make([]ProductData, len(c.products))
	copy(products, c.products)
	return products
}

func (c *RegisterOrderCommand) setExternalID(externalID string) error {
	if externalID == "" {
		return errs.NewValueIsRequiredError("externalId")
	}
	c.externalID = externalID
	return nil
}

func (c *RegisterOrderCommand) setProducts(products []ProductData) error {
	if len(products) == 0 {
		return errs.NewValueIsRequiredError("products")
	}

	var violations []error
	for i, p := range products {
		if p.Name == "" {
			violations = append(violations, errs.NewValueIsRequiredError(
				fmt.Sprintf("products[%d].name", i),
			))
		}
		if !p.Price.IsPositive() {
			violations = append(violations, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("products[%d].price", i),
				fmt.Errorf("%s is not greater than 0", p.Price.String()),
			))
		}
		if p.Quantity <= 0 {
			violations = append(violations, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("products[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", p.Quantity),
			))
		}
	}
	if err := errors.Join(violations...); err != nil {
		return err
	}

	c.products = make([]ProductData, len(products))
	copy(c.products, products)
	return nil
}

// RegisterOrderResponse is the result of the registration workflow.
// Workflow outcomes, including the duplicate conflict, are encoded here;
// the handler only returns an error for invalid input.
type RegisterOrderResponse struct {
	// Success reports whether the order was written and committed.
	Success bool

	// Message is a human-readable outcome description.
	Message string

	// Reason is a machine-readable failure discriminator, e.g.
	// ReasonDuplicateExternalID for the hard-duplicate conflict.
	Reason string

	// OrderID identifies the registered order, or the previously stored
	// order when the registration was rejected as a hard duplicate.
	OrderID *kernel.UUID

	// Order carries the full representation of the registered order on success.
	Order *OrderResult
}

// OrderResult is the order representation returned to callers.
type OrderResult struct {
	OrderID      kernel.UUID
	ExternalID   string
	Status       string
	CreatedAt    time.Time
	ProcessedAt  *time.Time
	TotalAmount  decimal.Decimal
	ErrorMessage string
	Products     []ProductData
}

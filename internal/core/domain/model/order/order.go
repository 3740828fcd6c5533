package order

import (
	"errors"
	"fmt"
	"time"

	"orderregistry/internal/core/domain/model/kernel"
	"orderregistry/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderHasNoProducts is returned when constructing an order with an
	// empty line-item list.
	ErrOrderHasNoProducts = errs.NewValueIsRequiredError("order must have at least one product")

	// ErrTotalAmountMismatch is returned by RestoreOrder when the stored total
	// disagrees with the sum of the stored line items.
	ErrTotalAmountMismatch = errs.NewValueIsInvalidError(
		"total amount does not equal the sum of line item prices",
	)
)

// duplicateOrderMessage is the fixed explanatory message recorded when an
// order is marked as a duplicate.
const duplicateOrderMessage = "duplicate order detected"

// Order is the aggregate root for the registration workflow. It owns its line
// items exclusively, derives its total amount from them, and carries a content
// fingerprint used for soft duplicate detection.
//
// Invariants:
//   - external id is non-empty
//   - the order holds at least one product
//   - totalAmount always equals the sum of the products' extended prices
//   - status transitions follow the Received -> {Processed, Duplicate, Error}
//     state machine; terminal states are never left
//   - the fingerprint reflects the content at construction time; products
//     added later do not change it
type Order struct {
	// id is the business identifier, assigned at construction and immutable.
	// Distinct from any storage surrogate key.
	id kernel.UUID

	// externalID is the caller-supplied correlation id, unique across orders
	externalID string

	// status is the current state in the registration lifecycle
	status Status

	// createdAt is when the aggregate was constructed (UTC)
	createdAt time.Time

	// processedAt is set when the order transitions to Processed
	processedAt *time.Time

	// totalAmount is derived from the products, never set directly
	totalAmount kernel.Money

	// errorMessage explains a Duplicate or Error status
	errorMessage string

	// fingerprint digests the content as supplied at construction
	fingerprint Fingerprint

	// products are the owned line items, at least one
	products []*Product

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an Order from caller-supplied data. The business identifier
// is generated here, the status starts as Received, and both the total amount
// and the content fingerprint are computed as part of construction.
//
// Fails if externalID is empty, products is empty, or any product was not
// built through NewProduct.
func NewOrder(externalID string, products []*Product) (*Order, error) {
	order := &Order{
		id:            kernel.NewUUID(),
		status:        Received,
		createdAt:     time.Now().UTC(),
		totalAmount:   kernel.Zero(),
		isConstructed: true,
	}

	if err := order.setExternalID(externalID); err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return nil, ErrOrderHasNoProducts
	}

	for _, product := range products {
		if err := order.AddProduct(product); err != nil {
			return nil, err
		}
	}

	order.fingerprint = ComputeFingerprint(order.externalID, order.products)

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. The aggregate is always
// restored complete: the caller must supply every line item, and the stored
// total is verified against the recomputed item sum so the derived-total
// invariant stays checkable after a round trip.
func RestoreOrder(
	id kernel.UUID,
	externalID string,
	status Status,
	createdAt time.Time,
	processedAt *time.Time,
	totalAmount kernel.Money,
	errorMessage string,
	fingerprint Fingerprint,
	products []*Product,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		totalAmount.Validate(),
	); err != nil {
		return nil, err
	}

	order := &Order{
		id:            id,
		status:        status,
		createdAt:     createdAt,
		processedAt:   processedAt,
		errorMessage:  errorMessage,
		totalAmount:   kernel.Zero(),
		isConstructed: true,
	}

	if err := order.setExternalID(externalID); err != nil {
		return nil, err
	}

	if fingerprint == "" {
		return nil, ErrFingerprintIsRequired
	}
	order.fingerprint = fingerprint

	if len(products) == 0 {
		return nil, ErrOrderHasNoProducts
	}

	for _, product := range products {
		if err := product.Validate(); err != nil {
			return nil, err
		}
		order.products = append(order.products, product)
	}

	if err := order.recalculateTotalAmount(); err != nil {
		return nil, err
	}

	if !order.totalAmount.IsEqual(totalAmount) {
		return nil, ErrTotalAmountMismatch
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their business identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's business identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ExternalID returns the caller-supplied correlation id.
func (o *Order) ExternalID() string {
	return o.externalID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the construction timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ProcessedAt returns the processing timestamp.
// Returns nil unless the order is Processed.
func (o *Order) ProcessedAt() *time.Time {
	return o.processedAt
}

// TotalAmount returns the derived sum of all line items' extended prices.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// ErrorMessage returns the explanatory message for Duplicate or Error orders.
// Empty for Received and Processed orders.
func (o *Order) ErrorMessage() string {
	return o.errorMessage
}

// Fingerprint returns the content digest computed at construction time.
func (o *Order) Fingerprint() Fingerprint {
	return o.fingerprint
}

// Products returns the owned line items. The returned slice is a copy; the
// items themselves are immutable.
func (o *Order) Products() []*Product {
	products := make([]*Product, len(o.products))
	copy(products, o.products)
	return products
}

// AddProduct appends a line item and recomputes the total amount.
//
// The fingerprint is deliberately not recomputed: it reflects the content as
// supplied at construction, so late additions do not change the order's
// duplicate-detection identity.
func (o *Order) AddProduct(product *Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	o.products = append(o.products, product)
	return o.recalculateTotalAmount()
}

// MarkProcessed transitions the order to Processed and records the processing
// timestamp. Rejected unless the order is in Received status: duplicate and
// errored orders must never be processed.
func (o *Order) MarkProcessed() error {
	newStatus, err := o.status.Process()
	if err != nil {
		if o.errorMessage != "" {
			return fmt.Errorf("%w (message: %s)", err, o.errorMessage)
		}
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.processedAt = &now
	return nil
}

// MarkDuplicate unconditionally sets the Duplicate status and records the
// fixed explanatory message. The workflow only calls this before any
// processing attempt.
func (o *Order) MarkDuplicate() {
	o.status = Duplicate
	o.errorMessage = duplicateOrderMessage
}

// MarkError sets the Error status and stores the message, recording a failed
// processing attempt without losing the order row.
func (o *Order) MarkError(message string) {
	if message == "" {
		message = "unknown error"
	}
	o.status = Error
	o.errorMessage = message
}

func (o *Order) setExternalID(externalID string) error {
	if externalID == "" {
		return errs.NewValueIsRequiredError("externalId")
	}
	o.externalID = externalID
	return nil
}

// recalculateTotalAmount rederives the total from the current line items.
func (o *Order) recalculateTotalAmount() error {
	total := kernel.Zero()
	for _, product := range o.products {
		extended, err := product.TotalPrice()
		if err != nil {
			return err
		}
		total, err = total.Add(extended)
		if err != nil {
			return err
		}
	}

	o.totalAmount = total
	return nil
}

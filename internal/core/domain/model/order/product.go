package order

import (
	"errors"
	"fmt"

	"orderregistry/internal/core/domain/model/kernel"
	"orderregistry/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the NewProduct factory method.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a line item owned by exactly one Order. It has no identity
// visible outside its order and is immutable once constructed: there is no
// in-place price or quantity edit, only whole-item addition to an order.
type Product struct {
	// name identifies the product line (non-empty)
	name string

	// price is the non-negative unit price
	price kernel.Money

	// quantity is the number of units (strictly positive)
	quantity int

	// isConstructed ensures the product was created via NewProduct
	isConstructed bool
}

// NewProduct creates a validated line item.
//
// Validation rules:
//   - name must be non-empty
//   - price must be a constructed, non-negative Money
//   - quantity must be greater than zero
//
// All violations are reported together via errors.Join.
func NewProduct(name string, price kernel.Money, quantity int) (*Product, error) {
	product := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		product.setName(name),
		product.setPrice(price),
		product.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate ensures the Product was created through NewProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}

	return nil
}

// Name returns the product line name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the unit price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// Quantity returns the number of units.
func (p *Product) Quantity() int {
	return p.quantity
}

// TotalPrice returns the extended price: unit price times quantity.
// Always non-negative by construction.
func (p *Product) TotalPrice() (kernel.Money, error) {
	return p.price.Multiply(p.quantity)
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}

func (p *Product) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	p.quantity = quantity
	return nil
}

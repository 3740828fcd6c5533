package kernel

import (
	"fmt"

	"orderregistry/internal/pkg/errs"
	"orderregistry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrMoneyIsNotConstructed is returned when validating a zero-value Money
	// that was not created through NewMoney or Zero.
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
		"Money must be created via NewMoney or Zero",
	)

	// ErrMoneyBelowZero is returned when a subtraction would produce a
	// negative amount. Money never holds a negative value.
	ErrMoneyBelowZero = errs.NewValueIsInvalidError("money cannot be subtracted below zero")
)

// Money is an immutable value object wrapping a non-negative decimal amount.
// All arithmetic produces new instances; the operands are never mutated.
//
// Example:
//
//	price, _ := kernel.NewMoney(decimal.NewFromFloat(10.00))
//	total, _ := price.Multiply(2) // 20.00
type Money struct {
	amount decimal.Decimal

	guard guard.ConstructorGuard
}

// NewMoney creates a Money from a decimal amount.
// Fails if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Zero returns a Money holding a zero amount.
func Zero() Money {
	return Money{
		amount: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the Money was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns a new Money holding the sum of both amounts.
func (m Money) Add(other Money) (Money, error) {
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount))
}

// Subtract returns a new Money holding the difference of both amounts.
// Fails with ErrMoneyBelowZero if the result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	if m.amount.LessThan(other.amount) {
		return Money{}, ErrMoneyBelowZero
	}
	return NewMoney(m.amount.Sub(other.amount))
}

// Multiply returns a new Money holding the amount scaled by a positive factor.
func (m Money) Multiply(factor int) (Money, error) {
	if factor <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"factor",
			fmt.Errorf("%d is not greater than 0", factor),
		)
	}
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(factor))))
}

// IsEqual reports whether both amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Package guard implements a defensive-construction pattern for value objects,
// commands, and queries. Embedding a ConstructorGuard lets a type detect whether
// it was built through its designated constructor or left as a zero value, so
// invariants established at construction time cannot be bypassed.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// passed as the validation error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value
// reports the object as not constructed; only NewConstructorGuard produces a
// guard that passes validation.
//
// Example:
//
//	type RegisterOrderCommand struct {
//	    externalID string
//	    guard      guard.ConstructorGuard
//	}
//
//	func NewRegisterOrderCommand(externalID string) (RegisterOrderCommand, error) {
//	    if externalID == "" {
//	        return RegisterOrderCommand{}, errs.NewValueIsRequiredError("externalId")
//	    }
//	    return RegisterOrderCommand{externalID: externalID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c RegisterOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrRegisterOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its holder as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the holder was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

// Package guard provides ConstructorGuard, a zero-cost marker that lets value
// objects, aggregates and commands tell a constructed instance apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field and set only by the owning constructor.
//
// Example:
//
//	type Rate struct {
//	    perLb decimal.Decimal
//	    guard guard.ConstructorGuard
//	}
//
//	func NewRate(perLb decimal.Decimal) (Rate, error) {
//	    if !perLb.IsPositive() {
//	        return Rate{}, errs.NewValueIsInvalidError("rate")
//	    }
//	    return Rate{perLb: perLb, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (r Rate) Validate() error {
//	    return r.guard.Validate(ErrRateIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}

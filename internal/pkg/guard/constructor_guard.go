// Package guard provides the ConstructorGuard used by domain objects and
// commands to detect zero-value instances that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the object was not
// constructed and the caller supplied no specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built through its designated constructor.
// Order lines, orders and every command embed one as a private field, so a
// zero-value instance is detected before it reaches a handler or repository.
//
// The guard holds a flag that only NewConstructorGuard sets. The zero value
// is "not constructed".
//
// Example usage:
//
//	var ErrCancelOrderCommandIsNotConstructed = errors.New(
//	    "CancelOrderCommand must be created via NewCancelOrderCommand")
//
//	type CancelOrderCommand struct {
//	    orderID kernel.UUID
//	    reason  string
//	    actor   string
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewCancelOrderCommand(orderID kernel.UUID, reason, actor string) (CancelOrderCommand, error) {
//	    if err := orderID.Validate(); err != nil {
//	        return CancelOrderCommand{}, err
//	    }
//	    return CancelOrderCommand{
//	        orderID: orderID,
//	        reason:  reason,
//	        actor:   actor,
//	        guard:   guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (c CancelOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard flagged as constructed. Call it only
// from the owning type's constructor.
//
// Returns:
//   - A ConstructorGuard with isConstructed set to true
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was built through its
// constructor. Owners call it first thing in their own Validate method.
//
// Parameters:
//   - validationError: the error to return if the object was not constructed
//
// Example:
//
//	func (o *Order) Validate() error {
//	    return o.guard.Validate(ErrOrderIsNotConstructed)
//	}
//
// Returns:
//   - nil if the object was constructed
//   - validationError if it was not
//   - ErrDefaultConstructorGuard if validationError is nil and the object was not constructed
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}

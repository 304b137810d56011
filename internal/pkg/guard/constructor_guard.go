package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by Validate when a
// nil error is passed as the validation error, so validation always fails with
// a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects, commands, and queries are only
// created through their designated constructor functions. Embedding a guard in
// a struct makes a zero-value instance detectable: the internal flag is only
// set by NewConstructorGuard, so any object built by direct struct literal
// fails Validate.
//
// Example usage:
//
//	type SearchOrdersQuery struct {
//	    filters map[string]string
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewSearchOrdersQuery(filters map[string]string) (SearchOrdersQuery, error) {
//	    return SearchOrdersQuery{filters: filters, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (q SearchOrdersQuery) Validate() error {
//	    return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns nil when it was; otherwise returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

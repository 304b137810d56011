// Package errs provides standardized error types for the orders application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes error types for the application's failure taxonomy:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value fails a format or range rule
//   - ObjectNotFoundError: for when an object cannot be found
//   - ValidationError: for client-input rule violations that must be surfaced
//     to the caller with their exact user-facing message
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// ValidationError is intentionally different from ValueIsInvalidError: its
// Error() output is the user-facing message verbatim, and several of them are
// aggregated with errors.Join so that every violated rule of a request is
// reported at once. ValidationMessages flattens such an aggregate back into
// the list of messages for transport-layer responses.
package errs

// Package errs provides standardized error types for the order registry.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes error types for the common failure scenarios:
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsInvalidError: a value fails validation
//   - ValueIsOutOfRangeError: a numeric value lies outside its bounds
//   - ObjectNotFoundError: an object cannot be located
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrValueIsInvalid)
//   - A struct type carrying the error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() so errors.Is matches the sentinel
//
// Callers classify failures with errors.Is against the sentinels rather than
// by string matching, which keeps the HTTP layer's status mapping stable.
package errs

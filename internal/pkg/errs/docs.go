// Package errs provides standardized error types for the buffet order core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError / ValueIsInvalidError: validation failures (4xx)
//   - ForbiddenError: an anonymous caller acting under a registered identity
//   - ObjectNotFoundError: unknown order id or pickup code
//   - EncryptionError / DecryptionError: envelope codec failures
//   - NotificationError: mail transport failures, never fatal to a transition
//   - StorageError: persistence failures
//   - StatusTransitionError, ConcurrencyError, ConflictError: rejected writes
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels; the HTTP
// adapter maps each sentinel to a status code.
package errs

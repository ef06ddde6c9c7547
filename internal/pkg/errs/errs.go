package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired        = errors.New("value is required")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrForbidden              = errors.New("forbidden")
	ErrObjectNotFound         = errors.New("object not found")
	ErrEncryption             = errors.New("encryption failed")
	ErrDecryption             = errors.New("decryption failed")
	ErrNotification           = errors.New("notification failed")
	ErrStorage                = errors.New("storage failure")
	ErrStatusTransition       = errors.New("status transition is not allowed")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrConflict               = errors.New("conflict")
)

// sanitize keeps user supplied values on a single log line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a value that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName)), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ForbiddenError reports an operation the caller is not allowed to perform.
type ForbiddenError struct {
	Reason string
}

func NewForbiddenError(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ObjectNotFoundError reports a lookup that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// EncryptionError reports a failure to seal a value.
type EncryptionError struct {
	Cause error
}

func NewEncryptionError(cause error) *EncryptionError {
	return &EncryptionError{Cause: cause}
}

func (e *EncryptionError) Error() string {
	return withCause(ErrEncryption.Error(), e.Cause)
}

func (e *EncryptionError) Unwrap() error {
	return ErrEncryption
}

// DecryptionError reports a malformed envelope or a value sealed under another key.
type DecryptionError struct {
	Cause error
}

func NewDecryptionError(cause error) *DecryptionError {
	return &DecryptionError{Cause: cause}
}

func (e *DecryptionError) Error() string {
	return withCause(ErrDecryption.Error(), e.Cause)
}

func (e *DecryptionError) Unwrap() error {
	return ErrDecryption
}

// NotificationError reports a mail composition or transport failure.
type NotificationError struct {
	Kind  string
	Cause error
}

func NewNotificationError(kind string, cause error) *NotificationError {
	return &NotificationError{Kind: kind, Cause: cause}
}

func (e *NotificationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrNotification, e.Kind), e.Cause)
}

func (e *NotificationError) Unwrap() error {
	return ErrNotification
}

// StorageError reports a persistence failure.
type StorageError struct {
	Operation string
	Cause     error
}

func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{Operation: operation, Cause: cause}
}

func (e *StorageError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrStorage, e.Operation), e.Cause)
}

func (e *StorageError) Unwrap() error {
	return ErrStorage
}

// StatusTransitionError reports a rejected status change.
type StatusTransitionError struct {
	From string
	To   string
}

func NewStatusTransitionError(from, to string) *StatusTransitionError {
	return &StatusTransitionError{From: from, To: to}
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrStatusTransition, e.From, sanitize(e.To))
}

func (e *StatusTransitionError) Unwrap() error {
	return ErrStatusTransition
}

// ConcurrencyError reports a write that lost an optimistic concurrency check.
type ConcurrencyError struct {
	ParamName string
	ID        any
}

func NewConcurrencyError(paramName string, id any) *ConcurrencyError {
	return &ConcurrencyError{ParamName: paramName, ID: id}
}

func (e *ConcurrencyError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConcurrentModification, e.ParamName, sanitize(e.ID))
}

func (e *ConcurrencyError) Unwrap() error {
	return ErrConcurrentModification
}

// ConflictError reports a value that collides with an existing unique value.
type ConflictError struct {
	ParamName string
	Value     any
}

func NewConflictError(paramName string, value any) *ConflictError {
	return &ConflictError{ParamName: paramName, Value: value}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s is already taken", ErrConflict, e.ParamName, sanitize(e.Value))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// IsValidation reports whether err belongs to the validation family.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) || errors.Is(err, ErrValueIsInvalid)
}

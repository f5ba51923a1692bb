// Package apperrors defines the error taxonomy the service and repository
// layers raise. The HTTP layer maps each kind to a transport status; nothing
// here carries credentials or datastore internals.
package apperrors

import "fmt"

// ValidationError is returned for malformed input the caller can correct and
// resubmit.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is returned when a referenced resource does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ForbiddenError is returned when the caller's tenant scope or role does not
// permit the operation.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	if e.Message == "" {
		return "access denied"
	}
	return e.Message
}

// InvalidStateError is returned when an operation targets an event outside the
// state it requires. Action is the past-tense verb of the attempted operation.
type InvalidStateError struct {
	Action  string
	Current string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("only pending events can be %s (current status: %s)", e.Action, e.Current)
}

// ConflictError is returned when creation targets an event item that already
// has an approved booking.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// TransactionError wraps a failed multi-document transaction. The whole write
// set was aborted; the caller may retry.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction aborted: %v", e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

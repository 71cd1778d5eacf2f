package model

import "fmt"

// Field-level validation codes. The UI resolves these to localized messages;
// the stores never produce human-readable text.
const (
	CodeRequired = "required"
	CodeInvalid  = "invalid"
	CodeMinWords = "minWords"
	CodeFailed   = "failed"
)

// FieldSubmit is the pseudo-field carrying transport/server submission errors.
const FieldSubmit = "submit"

// DomainError is a business-logic error with a symbolic code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors.
var (
	ErrValidationFailed  = NewDomainError("VALIDATION_FAILED", "Form validation failed")
	ErrEmptyCart         = NewDomainError("EMPTY_CART", "Cart must contain at least one item")
	ErrSubmitFailed      = NewDomainError("SUBMIT_FAILED", "Order submission failed")
	ErrAlreadySubmitting = NewDomainError("ALREADY_SUBMITTING", "A submission is already in flight")
)

// DuplicateError signals that an idempotency key was already processed.
// OrderID is a pseudo-identifier derived from the truncated key, not the
// identifier assigned on first acceptance.
type DuplicateError struct {
	OrderID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate submission, already processed as %s", e.OrderID)
}

// ValidationError carries the per-field presence map for a rejected request.
type ValidationError struct {
	Details map[string]FieldStatus
}

func (e *ValidationError) Error() string {
	missing := 0
	for _, status := range e.Details {
		if status == FieldRequired {
			missing++
		}
	}
	return fmt.Sprintf("request validation failed: %d missing field(s)", missing)
}

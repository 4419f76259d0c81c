package shared

// DomainError is a business rule failure. Code is stable and mapped to HTTP
// statuses by the interface layer; Message is for humans.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code, so a sentinel matches errors built with a
// more specific message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// InvalidInput builds an INVALID_INPUT error with a specific message
func InvalidInput(message string) *DomainError {
	return NewDomainError(ErrInvalidInput.Code, message)
}

var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Settlement errors shared across the store bounded contexts
var (
	ErrAlreadySettled     = NewDomainError("ALREADY_SETTLED", "Order has already been paid")
	ErrNotPaid            = NewDomainError("NOT_PAID", "Order must be paid before it can be fulfilled")
	ErrNoEligibleStudents = NewDomainError("NO_ELIGIBLE_STUDENTS", "No active students match the assignment target")
)

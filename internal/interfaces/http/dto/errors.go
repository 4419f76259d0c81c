package dto

import "net/http"

// Transport error codes, raised by the HTTP layer itself
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "INVALID_TOKEN"
	ErrCodeTooLarge     = "REQUEST_TOO_LARGE"
)

// Domain error codes returned verbatim from the service layer
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeItemNotFound        = "ITEM_NOT_FOUND"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodePackageNotFound     = "PACKAGE_NOT_FOUND"
	ErrCodeStudentNotFound     = "STUDENT_NOT_FOUND"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeAlreadySettled      = "ALREADY_SETTLED"
	ErrCodeAlreadyAssigned     = "PACKAGE_ALREADY_ASSIGNED"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeNotPaid             = "NOT_PAID"
	ErrCodeNoEligibleStudents  = "NO_ELIGIBLE_STUDENTS"
	ErrCodeInvalidState        = "INVALID_STATE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeTooLarge: http.StatusRequestEntityTooLarge,

	// Resource errors
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeItemNotFound:    http.StatusNotFound,
	ErrCodeOrderNotFound:   http.StatusNotFound,
	ErrCodePackageNotFound: http.StatusNotFound,
	ErrCodeStudentNotFound: http.StatusNotFound,

	// Conflicts -> 409
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeAlreadySettled:      http.StatusConflict,
	ErrCodeAlreadyAssigned:     http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeNotPaid:            http.StatusUnprocessableEntity,
	ErrCodeNoEligibleStudents: http.StatusUnprocessableEntity,
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

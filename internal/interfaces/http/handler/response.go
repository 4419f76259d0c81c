package handler

import "github.com/schoolstore/backend/internal/interfaces/http/dto"

// Swagger-only shapes. Handlers write dto.Response; these give the generated
// document a typed data field per endpoint.

// APIResponse is dto.Response with a concrete data type
type APIResponse[T any] struct {
	Success bool           `json:"success" example:"true"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse is the failure envelope, e.g. ORDER_NOT_FOUND or ALREADY_SETTLED
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}

package api

import (
	"time"

	"github.com/schedcu/shiftsolver/internal/validation"
)

// APIResponse is the standard response envelope for every endpoint.
type APIResponse struct {
	Data             interface{}       `json:"data,omitempty"`
	ValidationResult *validation.Result `json:"validation,omitempty"`
	Error            *ErrorResponse    `json:"error,omitempty"`
	Meta             ResponseMeta      `json:"meta"`
}

// ErrorResponse contains error details.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResponseMeta contains response metadata.
type ResponseMeta struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Version   string    `json:"version,omitempty"`
}

func meta() ResponseMeta {
	return ResponseMeta{Timestamp: time.Now().UTC(), Version: "1.0"}
}

// NewSuccessResponse wraps data in a successful APIResponse.
func NewSuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{Data: data, Meta: meta()}
}

// NewErrorResponse wraps a code/message pair in an error APIResponse.
func NewErrorResponse(code, message string) *APIResponse {
	return &APIResponse{Error: &ErrorResponse{Code: code, Message: message}, Meta: meta()}
}

// NewValidationResponse wraps a validation.Result in an APIResponse, useful
// when a request is rejected for reasons richer than one code/message pair.
func NewValidationResponse(result *validation.Result) *APIResponse {
	resp := &APIResponse{ValidationResult: result, Meta: meta()}
	if result.HasErrors() {
		resp.Error = &ErrorResponse{Code: "VALIDATION_FAILED", Message: result.Summary()}
	}
	return resp
}

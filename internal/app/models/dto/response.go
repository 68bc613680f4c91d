package dto

// Response is the uniform envelope returned by every endpoint
type Response struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message,omitempty" example:"Operation completed successfully"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a single field-level validation failure
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"email must be a valid email address"`
}

// NewSuccessResponse creates a success envelope with data
func NewSuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates an error envelope with a human-readable message
func NewErrorResponse(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}

// NewValidationErrorResponse creates an error envelope carrying the full
// list of field errors rather than failing on the first one
func NewValidationErrorResponse(errors []FieldError) Response {
	return Response{
		Success: false,
		Message: "Validation failed",
		Errors:  errors,
	}
}

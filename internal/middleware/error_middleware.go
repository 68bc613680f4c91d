package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaganyildiz/academix/internal/app/models/dto"
	"github.com/kaganyildiz/academix/internal/pkg/apperrors"
	"github.com/kaganyildiz/academix/internal/pkg/logger"
)

// HandleAPIError translates service layer errors into the response envelope.
// Unknown errors are logged and reported as a generic 500 so internals never
// leak to clients.
func HandleAPIError(c *gin.Context, err error) {
	status, message := classifyError(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled API error")
		message = "Internal server error"
	}

	c.JSON(status, dto.NewErrorResponse(message))
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, apperrors.ErrStudentNotFound):
		return http.StatusNotFound, "Student not found"
	case errors.Is(err, apperrors.ErrTeacherNotFound):
		return http.StatusNotFound, "Teacher not found"
	case errors.Is(err, apperrors.ErrClassNotFound):
		return http.StatusNotFound, "Class not found"
	case errors.Is(err, apperrors.ErrUsernameExists):
		return http.StatusConflict, "Username already exists"
	case errors.Is(err, apperrors.ErrEmailExists):
		return http.StatusConflict, "Email already exists"
	case errors.Is(err, apperrors.ErrInvalidRole):
		return http.StatusBadRequest, "Invalid role"
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, messageOf(err, "Validation failed")
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// messageOf prefers the wrapped CustomError message over the fallback
func messageOf(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}

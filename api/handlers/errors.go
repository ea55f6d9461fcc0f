package handlers

import (
	"net/http"

	"example.com/packpal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrorResponse defines the structure of an error response
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// respondError maps a domain error onto an HTTP status and writes the
// error body. Unknown errors are logged and reported as 500 without
// leaking detail.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	message := "Internal server error"

	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidReactionType):
		status, code, message = http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, service.ErrNotFound):
		status, code, message = http.StatusNotFound, "NOT_FOUND", "Resource not found"
	case errors.Is(err, service.ErrForbidden):
		status, code, message = http.StatusForbidden, "FORBIDDEN", "Forbidden"
	case errors.Is(err, service.ErrDuplicateEmail):
		status, code, message = http.StatusConflict, "CONFLICT", "Email already registered"
	case errors.Is(err, service.ErrUnknownEmail):
		status, code, message = http.StatusNotFound, "UNKNOWN_EMAIL", "No account with that email"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, code, message = http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrExpiredToken):
		status, code, message = http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token"
	default:
		log.WithError(err).Error("Unhandled error")
	}

	c.JSON(status, ErrorResponse{Message: message, Code: code})
}

// respondBadRequest writes a 400 for malformed request bodies
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "Invalid request body: " + err.Error(),
		Code:    "INVALID_REQUEST",
	})
}

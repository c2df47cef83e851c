// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"errors"
	"net/http"

	"funnel_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// Envelope is the response format shared by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error sends an error envelope with the given status code and message.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, Envelope{Success: false, Error: message, Details: details})
}

// OK sends a 200 OK success envelope wrapping data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// HandleError maps domain errors to HTTP responses.
// If the error chain holds an *apperr.Error, its Kind determines
// the HTTP status code. Otherwise it answers 500 without leaking the cause.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		Error(c, domainErr.HTTPStatus(), domainErr.Message, domainErr.Details)
		return true
	}

	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, "internal server error", nil)
	return true
}

// NotFound answers unmatched routes.
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Route not found", nil)
}

package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexhover/lexhover/internal/collections"
	"github.com/lexhover/lexhover/internal/providers"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server
// Error response. The actual error is logged but not exposed.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondDomainError maps domain errors onto HTTP status codes. Anything
// unrecognized is treated as internal.
func respondDomainError(c *gin.Context, err error, context string) {
	var reqErr *providers.RequestError
	switch {
	case errors.Is(err, collections.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "empty_content"})
	case errors.Is(err, collections.ErrFeatureDisabled):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "feature_disabled"})
	case errors.Is(err, providers.ErrUnknownPlatform):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "unknown_platform"})
	case errors.Is(err, providers.ErrPlatformUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: "platform_unavailable"})
	case errors.As(err, &reqErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error(), Code: "platform_request_failed"})
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

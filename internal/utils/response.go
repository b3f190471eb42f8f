package utils

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys shared by middleware and handlers.
const (
	RequestIDKey = "requestID"
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of write endpoints that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// Success sends data as a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends data as a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 response carrying only a message.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// Error sends a standard error response.
func Error(c *gin.Context, statusCode int, errorMessage string) {
	c.JSON(statusCode, ErrorResponse{Error: errorMessage})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, errorMessage string) {
	Error(c, http.StatusBadRequest, errorMessage)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, errorMessage string) {
	Error(c, http.StatusUnauthorized, errorMessage)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, errorMessage string) {
	Error(c, http.StatusForbidden, errorMessage)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, errorMessage string) {
	Error(c, http.StatusNotFound, errorMessage)
}

// InternalServerError logs err with the request id and sends a 500 carrying
// only the generic message.
func InternalServerError(c *gin.Context, errorMessage string, err error) {
	attrs := []any{
		slog.String("request_id", c.GetString(RequestIDKey)),
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	slog.ErrorContext(c.Request.Context(), errorMessage, attrs...)
	Error(c, http.StatusInternalServerError, errorMessage)
}

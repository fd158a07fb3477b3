package api

import (
	"github.com/gin-gonic/gin"
)

// Error codes that are not validation codes.
const (
	CodeInvalidRequest = "invalid_request"
	CodeInternal       = "internal"
	CodeNotFound       = "not_found"
	CodeUnavailable    = "unavailable"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code})
}

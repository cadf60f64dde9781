package server

import "github.com/gin-gonic/gin"

// Error codes carried in the error envelope.
const (
	codeInvalidRequest   = "invalid_request"
	codeInvalidFile      = "invalid_file"
	codeProcessingFailed = "processing_failed"
	codeInternal         = "internal"
)

// ErrorBody is the error object returned by every failing endpoint.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorBody.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

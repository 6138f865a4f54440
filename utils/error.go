package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, APIResponse{
					Code:    "SERVER_ERROR",
					Message: "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RespondSuccess sends a standardized success envelope.
func RespondSuccess(c *gin.Context, status int, code, message string, data any) {
	c.JSON(status, APIResponse{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// RespondFailure sends a standardized failure envelope.
func RespondFailure(c *gin.Context, status int, code, message string) {
	logger := GetLogger()
	logger.Warn(message, zap.String("code", code), zap.Int("status", status))
	c.JSON(status, APIResponse{
		Code:    code,
		Message: message,
	})
}

package utils

import (
	"net/http"

	"clinicportal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler is a middleware that catches panics and returns the uniform
// failure envelope instead of tearing down the request.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, models.APIResponse{
					Success: false,
					Message: "Internal Server Error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized failure envelope.
func JSONError(c *gin.Context, status int, message string) {
	GetLogger().Warn("request failed", zap.Int("status", status), zap.String("message", message))
	c.JSON(status, models.APIResponse{Success: false, Message: message})
}

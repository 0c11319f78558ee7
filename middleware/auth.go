package middleware

import (
	"net/http"
	"strings"

	"clinicportal/utils"

	"github.com/gin-gonic/gin"
)

// ContextEmailKey holds the authenticated caller's email in the gin context.
const ContextEmailKey = "authEmail"

// JWTAuthMiddleware verifies the Bearer token and stores the caller's email
// for downstream handlers.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		email, err := utils.ExtractEmailFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextEmailKey, email)
		c.Next()
	}
}

// CallerEmail returns the authenticated email set by JWTAuthMiddleware.
func CallerEmail(c *gin.Context) string {
	email, _ := c.Get(ContextEmailKey)
	s, _ := email.(string)
	return s
}

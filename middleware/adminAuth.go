package middleware

import (
	"net/http"

	userRepo "clinicportal/database/repository/user"

	"github.com/gin-gonic/gin"
)

// AdminOnly is the single authorization predicate for admin routes. It runs
// after JWTAuthMiddleware and checks the caller's stored role, so no
// handler re-implements the admin check.
func AdminOnly(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := CallerEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing caller identity"})
			return
		}

		u, err := users.GetByEmail(c.Request.Context(), email)
		if err != nil || !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}

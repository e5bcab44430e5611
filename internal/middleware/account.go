package middleware

import (
	"net/http"

	"orderhub/internal/repository"

	"github.com/gin-gonic/gin"
)

// AccountEnabled rejects requests from disabled accounts with 403. Clients
// must treat the response as a forced sign-out: an admin can flip the status
// at any time and the very next request fails closed.
func AccountEnabled(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := userRepo.GetByID(GetUserID(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if u.IsDisabled() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}
		c.Next()
	}
}

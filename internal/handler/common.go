package handler

import (
	"net/http"
	"strconv"

	"orderhub/internal/middleware"
	"orderhub/internal/service"

	"github.com/gin-gonic/gin"
)

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// requireTenantProfile resolves the caller's profile and rejects requests
// from principals whose tenant path cannot be derived yet (onboarding not
// completed). Returns nil after writing the response on failure.
func requireTenantProfile(c *gin.Context, profiles *service.ProfileService) *service.Profile {
	p, err := profiles.Resolve(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile unavailable"})
		return nil
	}
	if p.OnboardingRequired || p.TenantPath == "" {
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": "could not determine storage path"})
		return nil
	}
	return p
}

package middleware

import (
	"net/http"

	"dealercrm/internal/domain"
	"dealercrm/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the given roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role.(string) == string(r) {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// ManagementOnly admits Admin and Sales Manager users.
func ManagementOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleSalesManager)
}

// AdminOnly admits Admin users.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

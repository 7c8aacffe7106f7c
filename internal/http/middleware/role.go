package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles allows the request only when the role set by AdminAuth is one
// of allowedRoles (case-insensitive).
//
//	admin.Use(AdminAuth(verifier), RequireRoles("admin"))
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(userRoleKey)
		if role == "" {
			abortUnauthorized(c, "no role on request")
			return
		}

		if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "role not allowed",
				"code":       "forbidden",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Next()
	}
}

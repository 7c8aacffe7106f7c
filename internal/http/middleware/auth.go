package middleware

import (
	"net/http"
	"strings"

	"valleycars/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
	userKey     = "user"
)

// TokenVerifier resolves a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (domain.RequestContext, error)
}

// AdminAuth requires a valid bearer token and stores the caller in the context
// under userID, userRole and user for RequireRoles and handlers.
func AdminAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		rc, err := v.Verify(token)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		c.Set(userIDKey, rc.Subject)
		c.Set(userRoleKey, rc.Role)
		c.Set(userKey, rc)
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}

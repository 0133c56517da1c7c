package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/enovcorp/academy-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	// AdminKeyHeader carries the shared admin secret.
	AdminKeyHeader = "X-Admin-Key"
	// AdminSessionCookie is set by the login endpoint and holds the same secret.
	AdminSessionCookie = "enov_admin_session"
)

// AdminKey returns a middleware enforcing the single shared admin secret.
// There is no per-user identity behind it; every admin request carries the
// key and is compared in constant time.
func AdminKey(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			response.InternalError(c, "Cle admin non configuree.")
			return
		}
		provided := extractAdminKey(c)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			response.Unauthorized(c, "Acces refuse.")
			return
		}
		c.Next()
	}
}

func extractAdminKey(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader(AdminKeyHeader)); key != "" {
		return key
	}
	if auth := strings.TrimSpace(c.GetHeader("Authorization")); auth != "" {
		if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return strings.TrimSpace(auth[7:])
		}
		return auth
	}
	if cookie, err := c.Cookie(AdminSessionCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

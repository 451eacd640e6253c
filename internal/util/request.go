package util

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenFromRequest extracts the session token from a request. Lookup order:
// session cookie, Authorization: Bearer header, ?token= query parameter
// (for download links that cannot set headers).
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	return c.Query("token")
}

package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"cardtime.app/cardtime/security"
	"cardtime.app/cardtime/web/common"
)

const (
	// Session keys set by the account handlers.
	SessionUserKey    = "userId"
	SessionCultureKey = "culture"

	// Context key the authenticated user id is exposed under.
	ContextUserKey = "userId"
)

// Authentication accepts either a Bearer token (devices, CLI) or the
// session cookie (browsers). The authenticated user id lands in the gin
// context under ContextUserKey.
func Authentication(settings security.TokenSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("malformed authorization header"))
				return
			}

			userID, err := security.ParseIdentityToken(parts[1], settings)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
				return
			}

			c.Set(ContextUserKey, userID)
			c.Next()
			return
		}

		session := sessions.Default(c)
		if userID, ok := session.Get(SessionUserKey).(string); ok && userID != "" {
			c.Set(ContextUserKey, userID)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("authentication required"))
	}
}

// Culture reads the session language, defaulting when none is set.
func Culture(c *gin.Context, fallback string) string {
	session := sessions.Default(c)
	if culture, ok := session.Get(SessionCultureKey).(string); ok && culture != "" {
		return culture
	}
	return fallback
}

package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardtime.app/cardtime/infrastructure/communication"
	"cardtime.app/cardtime/web/common"
)

// Recovery turns panics into 500s and mirrors them to the ops channel.
// The Slack post is best effort and must never take the request down twice.
func Recovery(notifier *communication.Slack) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path))

				if notifier != nil {
					go func() {
						msg := fmt.Sprintf("panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
						if err := notifier.Error(msg); err != nil {
							zap.L().Warn("failed to notify Slack", zap.Error(err))
						}
					}()
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					common.NewErrorResponse("internal server error"))
			}
		}()
		c.Next()
	}
}

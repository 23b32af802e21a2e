package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// RequireUser rejects requests that carry no caller identity and stores the
// identity on the context for handlers.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing user identity"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/infrastructure/auth"

	"github.com/gin-gonic/gin"
)

const (
	userContextKey    = "user"
	accessTokenCookie = "accessToken"
)

// Auth resolves the caller identity from a bearer token, falling back to the
// access token cookie set by the browser client.
func Auth(secret []byte, log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}

		user, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			log.Debug("Rejected access token",
				slog.String("path", c.Request.URL.Path),
				slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

func SetUser(c *gin.Context, user *model.User) {
	c.Set(userContextKey, user)
}

func UserFromContext(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok && user != nil
}

func extractToken(c *gin.Context) (string, bool) {
	header := strings.Trim(c.GetHeader("Authorization"), "\"' ")
	if header != "" {
		parts := strings.Fields(header)
		switch {
		case len(parts) == 2 && strings.EqualFold(parts[0], "bearer"):
			return strings.Trim(parts[1], "\"'"), true
		case len(parts) == 1:
			return parts[0], true
		default:
			return "", false
		}
	}

	cookie, err := c.Cookie(accessTokenCookie)
	if err != nil || cookie == "" {
		return "", false
	}
	return cookie, true
}

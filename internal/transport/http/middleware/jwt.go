package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"jobtracker/internal/pkg/jwtutil"
	"jobtracker/internal/transport/http/response"
)

const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "email"
)

// OptionalAuthJWT lets anonymous requests through untouched. When a bearer
// token is supplied it must be valid; its user id then scopes downstream
// persistence calls to the caller.
func OptionalAuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Next()
			return
		}
		if !authenticate(c, secret, authHeader) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, secret, authHeader string) bool {
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		response.Error(c, 401, "invalid authorization scheme")
		c.Abort()
		return false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	claims, err := jwtutil.ParseToken(secret, token)
	if err != nil {
		response.Error(c, 401, "invalid or expired token")
		c.Abort()
		return false
	}

	c.Set(ContextUserIDKey, claims.UserID)
	c.Set(ContextEmailKey, claims.Email)
	return true
}

// UserIDFromContext returns the authenticated user's id, or nil for
// anonymous requests.
func UserIDFromContext(c *gin.Context) *uint {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return nil
	}
	userID, ok := value.(uint)
	if !ok {
		return nil
	}
	return &userID
}

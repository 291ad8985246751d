package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/auth"
	"taskmanager/internal/constants"
	apierrors "taskmanager/internal/errors"
	"taskmanager/internal/identity"
)

// RequireAuth validates the bearer token and stores the caller identity in
// the request context.
func RequireAuth(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "Authorization header must use Bearer token")
			c.Abort()
			return
		}

		caller, err := ids.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCaller, caller)
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role. Must run after
// RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !caller.IsAdmin {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCaller retrieves the caller identity from context
func GetCaller(c *gin.Context) (auth.Caller, bool) {
	value, exists := c.Get(constants.ContextKeyCaller)
	if !exists {
		return auth.Caller{}, false
	}

	caller, ok := value.(auth.Caller)
	return caller, ok
}

package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/todoapp/todo-api/internal/auth"
	"github.com/todoapp/todo-api/internal/constants"
	apierrors "github.com/todoapp/todo-api/internal/errors"
	"github.com/todoapp/todo-api/internal/models"
)

// RequireAuth checks if the user is authenticated via session and stamps the
// principal onto the request context for the service layer.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)
		role := session.Get(constants.ContextKeyUserRole)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		uid, ok := toUint64(userID)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		roleValue := models.RoleUser
		if s, ok := role.(string); ok && s != "" {
			roleValue = models.RoleType(s)
		}

		// Store in the gin context for handlers and in the request context
		// for the services.
		c.Set(constants.ContextKeyUserID, uid)
		c.Set(constants.ContextKeyUserRole, roleValue)
		ctx := auth.WithPrincipal(c.Request.Context(), auth.Principal{
			UserID: uid,
			Role:   roleValue,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole rejects callers whose session role does not match.
func RequireRole(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, exists := GetUserRole(c)
		if !exists || current != role {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

// GetUserRole retrieves the current user role from context
func GetUserRole(c *gin.Context) (models.RoleType, bool) {
	role, exists := c.Get(constants.ContextKeyUserRole)
	if !exists {
		return "", false
	}
	r, ok := role.(models.RoleType)
	return r, ok
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gamecraft/internal/auth"
	"gamecraft/internal/database"
	"gamecraft/internal/errcode"
)

const (
	userIDKey = "userID"
	roleKey   = "userRole"
)

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"code":    errcode.AuthRequired,
		"message": msg,
	})
}

// AuthMiddleware validates the bearer session token, rejects revoked
// tokens and stores the principal on the context.
func AuthMiddleware(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "로그인이 필요합니다")
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "로그인이 필요합니다")
			return
		}

		claims, err := authService.Tokens.Validate(parts[1])
		if err != nil {
			abortUnauthorized(c, "로그인이 필요합니다")
			return
		}
		if authService.IsBlacklisted(c.Request.Context(), claims.ID) {
			abortUnauthorized(c, "로그인이 필요합니다")
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// AdminMiddleware requires an ADMIN principal. The role is resolved
// from the store on every request so a promotion or demotion applies
// without waiting for the token to be reissued. Must run after
// AuthMiddleware.
func AdminMiddleware(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		abortForbidden := func() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"code":    errcode.Forbidden,
				"message": "관리자 권한이 필요합니다",
			})
		}

		userID, ok := UserIDFromContext(c)
		if !ok {
			abortForbidden()
			return
		}

		user, err := authService.GetUser(c.Request.Context(), userID)
		if err != nil || user.Role != database.RoleAdmin {
			abortForbidden()
			return
		}

		c.Set(roleKey, user.Role)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// RoleFromContext returns the authenticated user role.
func RoleFromContext(c *gin.Context) (database.UserRole, bool) {
	value, ok := c.Get(roleKey)
	if !ok {
		return "", false
	}
	role, ok := value.(database.UserRole)
	return role, ok
}

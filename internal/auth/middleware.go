package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MrzAtn/recipe-app-api/internal/users"
)

const headerScheme = "Token "

// RequireAuth resolves the bearer token from the Authorization header and
// loads its owner into the request context. Anything short of a known key on
// an active user aborts with 401.
func RequireAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, headerScheme) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		key := strings.TrimPrefix(h, headerScheme)

		var t Token
		if err := db.First(&t, "key = ?", key).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}

		var u users.User
		if err := db.First(&u, t.UserID).Error; err != nil || !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}

		c.Set(users.ContextKey, &u)
		c.Next()
	}
}

// RequireStaff gates admin routes; it assumes RequireAuth already ran.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := users.Current(c)
		if u == nil || !u.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"detail": "You do not have permission to perform this action."})
			return
		}
		c.Next()
	}
}

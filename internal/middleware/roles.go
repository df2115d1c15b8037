package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/models"
)

// UserLoader resolves a user (with its role row) by id.
type UserLoader interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOrReadOnly lets safe methods through for everyone; unsafe methods
// require the admin role (or superuser elevation). Must run after an auth
// middleware for authenticated callers.
func AdminOrReadOnly(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		userID := ContextUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil || !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Package auth keeps the logged-in user in the session cookie and guards
// routes by role. OpenID Connect login is optional.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

const (
	sessionUserKey = "user_id"
	contextUserKey = "user"
)

// UserLoader resolves the session's user id to a user.
type UserLoader interface {
	CurrentUser(ctx context.Context, id string) (*models.User, error)
}

// SignIn stores the user id in the session.
func SignIn(c *gin.Context, userID string) error {
	sess := sessions.Default(c)
	sess.Set(sessionUserKey, userID)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SignOut drops the user from the session but keeps the rest (the cart).
func SignOut(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Delete(sessionUserKey)
	sess.Delete(stateKey)
	return sess.Save()
}

func SessionUserID(c *gin.Context) string {
	id, _ := sessions.Default(c).Get(sessionUserKey).(string)
	return id
}

// RequireAuth loads the session user onto the context or aborts with 401.
func RequireAuth(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := SessionUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}

		user, err := users.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("session user rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not found"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}
		if !user.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentUser is the user RequireAuth put on the context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

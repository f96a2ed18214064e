package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/auth"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

func (h *Handler) signIn(c *gin.Context, user *models.User, status int) {
	if err := auth.SignIn(c, user.ID); err != nil {
		h.fail(c, err)
		return
	}
	success(c, status, user)
}

// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterInput
	if !h.bind(c, &req) {
		return
	}
	user, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.signIn(c, user, http.StatusCreated)
}

// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req service.LoginInput
	if !h.bind(c, &req) {
		return
	}
	user, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.signIn(c, user, http.StatusOK)
}

// POST /api/v1/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	if err := auth.SignOut(c); err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// GET /api/v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	success(c, http.StatusOK, auth.CurrentUser(c))
}

// GET /api/v1/auth/oidc/login
func (h *Handler) OIDCLogin(c *gin.Context) {
	url, err := h.oidc.LoginURL(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// GET /api/v1/auth/oidc/callback
func (h *Handler) OIDCCallback(c *gin.Context) {
	claims, err := h.oidc.Exchange(c, c.Query("state"), c.Query("code"))
	if err != nil {
		log.Warn().Err(err).Msg("oidc callback rejected")
		if errors.Is(err, auth.ErrStateMismatch) {
			h.fail(c, apperr.Validation("state mismatch", nil))
			return
		}
		h.fail(c, apperr.Unauthorized("login failed"))
		return
	}

	user, err := h.authSvc.UpsertOIDCUser(c.Request.Context(), claims)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.signIn(c, user, http.StatusOK)
}

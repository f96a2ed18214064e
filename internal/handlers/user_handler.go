package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/auth"
	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

// GET /api/v1/admin/users
func (h *Handler) ListUsers(c *gin.Context) {
	list, err := h.users.ListUsers(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, list)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req service.CreateUserInput
	if !h.bind(c, &req) {
		return
	}
	u, err := h.users.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusCreated, u)
}

// PUT /api/v1/admin/users/:id changes the role.
func (h *Handler) UpdateUserRole(c *gin.Context) {
	var req service.UpdateRoleInput
	if !h.bind(c, &req) {
		return
	}
	u, err := h.users.UpdateUserRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if me := auth.CurrentUser(c); me != nil && me.ID == c.Param("id") {
		h.fail(c, apperr.Validation("cannot delete your own account", nil))
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "User deleted successfully"})
}

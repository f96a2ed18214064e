package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

// GET /api/v1/categories
func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, cats)
}

// POST /api/v1/admin/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryInput
	if !h.bind(c, &req) {
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusCreated, category)
}

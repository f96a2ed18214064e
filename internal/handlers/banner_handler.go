package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

// GET /api/v1/banners serves the storefront, so only active banners.
func (h *Handler) ListActiveBanners(c *gin.Context) {
	banners, err := h.banners.ListBanners(c.Request.Context(), true)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, banners)
}

// GET /api/v1/admin/banners?active=true
func (h *Handler) ListBanners(c *gin.Context) {
	banners, err := h.banners.ListBanners(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, banners)
}

func (h *Handler) GetBanner(c *gin.Context) {
	b, err := h.banners.GetBanner(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, b)
}

func (h *Handler) CreateBanner(c *gin.Context) {
	var req service.CreateBannerInput
	if !h.bind(c, &req) {
		return
	}
	b, err := h.banners.CreateBanner(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusCreated, b)
}

func (h *Handler) UpdateBanner(c *gin.Context) {
	var req service.UpdateBannerInput
	if !h.bind(c, &req) {
		return
	}
	b, err := h.banners.UpdateBanner(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, b)
}

func (h *Handler) DeleteBanner(c *gin.Context) {
	if err := h.banners.DeleteBanner(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Banner deleted successfully"})
}

// POST /api/v1/admin/banners/:id/toggle
func (h *Handler) ToggleBanner(c *gin.Context) {
	b, err := h.banners.ToggleBannerActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, b)
}

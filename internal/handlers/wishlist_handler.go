package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wesley-SdS/modern-ecommerce/internal/auth"
)

type WishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *Handler) ListWishlist(c *gin.Context) {
	items, err := h.wishlist.List(c.Request.Context(), auth.CurrentUser(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, items)
}

func (h *Handler) AddToWishlist(c *gin.Context) {
	var req WishlistRequest
	if !h.bind(c, &req) {
		return
	}
	item, err := h.wishlist.Add(c.Request.Context(), auth.CurrentUser(c).ID, req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusCreated, item)
}

func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	if err := h.wishlist.Remove(c.Request.Context(), auth.CurrentUser(c).ID, c.Param("productId")); err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Removed from wishlist"})
}

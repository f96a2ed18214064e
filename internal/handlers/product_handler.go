package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

// GET /api/v1/products
func (h *Handler) ListProducts(c *gin.Context) {
	list, err := h.products.ListProducts(c.Request.Context(), service.ProductQuery{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 0),
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, list)
}

// GET /api/v1/products/:id accepts an id or a slug.
func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, p)
}

// GET /api/v1/products/average?category=<slug or id>
func (h *Handler) GetAveragePrice(c *gin.Context) {
	category := c.Query("category")
	avg, err := h.products.AveragePrice(c.Request.Context(), category)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"category": category, "averagePriceCents": avg})
}

// POST /api/v1/admin/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var req service.CreateProductInput
	if !h.bind(c, &req) {
		return
	}

	p, err := h.products.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusCreated, p)
}

// PUT /api/v1/admin/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req service.UpdateProductInput
	if !h.bind(c, &req) {
		return
	}

	p, err := h.products.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, p)
}

// DELETE /api/v1/admin/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// POST /api/v1/admin/products/:id/stock
func (h *Handler) AdjustStock(c *gin.Context) {
	var req service.AdjustStockInput
	if !h.bind(c, &req) {
		return
	}

	p, err := h.products.AdjustStock(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, p)
}

// GET /api/v1/admin/products/:id/inventory
func (h *Handler) ProductInventory(c *gin.Context) {
	ms, err := h.inventory.ProductHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, ms)
}

// GET /api/v1/admin/inventory
func (h *Handler) ListInventory(c *gin.Context) {
	list, err := h.inventory.ListMovements(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, list)
}

package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

func TestListAndGetProducts(t *testing.T) {
	env := setupTestRouter(t, false)
	seedProduct(t, env.db, "mouse", 2500, 3)
	seedProduct(t, env.db, "keyboard", 9900, 0)
	c := env.client(t)

	t.Run("lists with pagination", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/v1/products?limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list service.ProductList
		res := decode(t, w, &list)
		assert.True(t, res.Success)
		assert.Len(t, list.Data, 1)
		assert.Equal(t, int64(2), list.Pagination.Total)
		assert.Equal(t, 2, list.Pagination.TotalPages)
	})

	t.Run("search filters by title", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/v1/products?search=KEY", nil)
		var list service.ProductList
		decode(t, w, &list)
		require.Len(t, list.Data, 1)
		assert.Equal(t, "keyboard", list.Data[0].Title)
	})

	t.Run("gets by slug with stock status", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/v1/products/mouse", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var p service.ProductView
		decode(t, w, &p)
		assert.Equal(t, "low-stock", string(p.StockStatus))
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/v1/products/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		res := decode(t, w, nil)
		assert.False(t, res.Success)
		assert.Equal(t, "product not found", res.Error)
	})
}

func TestAdminProductRoutesRequireAdmin(t *testing.T) {
	env := setupTestRouter(t, false)
	body := gin.H{"title": "Laptop", "description": "d", "priceCents": 100, "sku": "L1"}

	anon := env.client(t)
	assert.Equal(t, http.StatusUnauthorized, anon.do(http.MethodPost, "/api/v1/admin/products", body).Code)

	customer := env.client(t)
	customer.loginAs("cust@example.com", models.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, customer.do(http.MethodPost, "/api/v1/admin/products", body).Code)
}

func TestCreateProductHandler(t *testing.T) {
	env := setupTestRouter(t, false)
	admin := env.client(t)
	admin.loginAs("admin@example.com", models.RoleAdmin)

	t.Run("creates a product with an initial stock movement", func(t *testing.T) {
		w := admin.do(http.MethodPost, "/api/v1/admin/products", gin.H{
			"title":       "Gaming Laptop",
			"description": "Fast",
			"priceCents":  450000,
			"sku":         "LAP-1",
			"stock":       7,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var p models.Product
		decode(t, w, &p)
		assert.Equal(t, "gaming-laptop", p.Slug)
		assert.Equal(t, "BRL", p.Currency)

		var movements []models.InventoryMovement
		require.NoError(t, env.db.Where("product_id = ?", p.ID).Find(&movements).Error)
		require.Len(t, movements, 1)
		assert.Equal(t, 7, movements[0].Quantity)
	})

	t.Run("reports field errors", func(t *testing.T) {
		w := admin.do(http.MethodPost, "/api/v1/admin/products", gin.H{"priceCents": -1})
		require.Equal(t, http.StatusBadRequest, w.Code)

		res := decode(t, w, nil)
		assert.Equal(t, "validation error", res.Error)

		var details []service.FieldError
		require.NoError(t, json.Unmarshal(res.Details, &details))
		fields := map[string]bool{}
		for _, d := range details {
			fields[d.Field] = true
		}
		assert.True(t, fields["title"])
		assert.True(t, fields["priceCents"])
		assert.True(t, fields["sku"])
	})

	t.Run("duplicate sku is a conflict", func(t *testing.T) {
		w := admin.do(http.MethodPost, "/api/v1/admin/products", gin.H{
			"title": "Other", "description": "x", "priceCents": 100, "sku": "LAP-1",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := admin.do(http.MethodPost, "/api/v1/admin/products", "not an object")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdjustStockHandler(t *testing.T) {
	env := setupTestRouter(t, false)
	p := seedProduct(t, env.db, "mouse", 2500, 3)
	admin := env.client(t)
	admin.loginAs("admin@example.com", models.RoleAdmin)

	w := admin.do(http.MethodPost, "/api/v1/admin/products/"+p.ID+"/stock", gin.H{"quantity": -5})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = admin.do(http.MethodPost, "/api/v1/admin/products/"+p.ID+"/stock", gin.H{"quantity": 4, "note": "restock"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Product
	decode(t, w, &updated)
	assert.Equal(t, 7, updated.Stock)

	w = admin.do(http.MethodGet, "/api/v1/admin/products/"+p.ID+"/inventory", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []models.InventoryMovement
	decode(t, w, &history)
	require.Len(t, history, 1)
	assert.Equal(t, "restock", history[0].Note)
}

func TestGetAveragePriceHandler(t *testing.T) {
	env := setupTestRouter(t, false)
	cat := models.Category{Name: "Electronics", Slug: "electronics"}
	require.NoError(t, env.db.Create(&cat).Error)

	for i, price := range []int64{1000, 3000} {
		p := seedProduct(t, env.db, []string{"a", "b"}[i], price, 1)
		require.NoError(t, env.db.Model(&p).Update("category_id", cat.ID).Error)
	}
	seedProduct(t, env.db, "other", 99999, 1)

	w := env.client(t).do(http.MethodGet, "/api/v1/products/average?category=electronics", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		AveragePriceCents float64 `json:"averagePriceCents"`
	}
	decode(t, w, &out)
	assert.InDelta(t, 2000, out.AveragePriceCents, 0.001)
}

func TestCategoryHandlers(t *testing.T) {
	env := setupTestRouter(t, false)
	admin := env.client(t)
	admin.loginAs("admin@example.com", models.RoleAdmin)

	w := admin.do(http.MethodPost, "/api/v1/admin/categories", gin.H{"name": "Home Office"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cat models.Category
	decode(t, w, &cat)
	assert.Equal(t, "home-office", cat.Slug)

	w = admin.do(http.MethodPost, "/api/v1/admin/categories", gin.H{"name": "Desks", "parentId": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.client(t).do(http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Home Office")
}

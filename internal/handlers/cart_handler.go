package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/cart"
	"github.com/Wesley-SdS/modern-ecommerce/internal/money"
)

const sessionCartKey = "cart"

type CartResponse struct {
	Items     []cart.Item       `json:"items"`
	Totals    cart.Totals       `json:"totals"`
	Formatted map[string]string `json:"formatted"`
	Locale    string            `json:"locale"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type QuoteItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type QuoteRequest struct {
	Items []QuoteItem `json:"items" binding:"required,dive"`
}

// The cart lives in the session as a JSON string so the cookie codec only
// ever sees basic types.
func loadCart(c *gin.Context) *cart.Cart {
	var ct cart.Cart
	raw, _ := sessions.Default(c).Get(sessionCartKey).(string)
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &ct); err != nil {
			log.Warn().Err(err).Msg("discarding unreadable session cart")
			return &cart.Cart{}
		}
	}
	return &ct
}

func saveCart(c *gin.Context, ct *cart.Cart) error {
	raw, err := json.Marshal(ct)
	if err != nil {
		return err
	}
	sess := sessions.Default(c)
	sess.Set(sessionCartKey, string(raw))
	return sess.Save()
}

func (h *Handler) locale(c *gin.Context) string {
	if l := c.Query("locale"); l != "" {
		return money.Negotiate(l)
	}
	return money.Negotiate(c.GetHeader("Accept-Language"))
}

func (h *Handler) cartResponse(c *gin.Context, ct *cart.Cart) CartResponse {
	totals := ct.Totals(h.pricing)
	locale := h.locale(c)
	items := ct.Items
	if items == nil {
		items = []cart.Item{}
	}
	return CartResponse{
		Items:  items,
		Totals: totals,
		Formatted: map[string]string{
			"subtotal": money.FormatCentsIn(totals.Subtotal, h.currency, locale),
			"tax":      money.FormatCentsIn(totals.Tax, h.currency, locale),
			"shipping": money.FormatCentsIn(totals.Shipping, h.currency, locale),
			"total":    money.FormatCentsIn(totals.Total, h.currency, locale),
		},
		Locale: locale,
	}
}

func (h *Handler) writeCart(c *gin.Context, ct *cart.Cart) {
	if err := saveCart(c, ct); err != nil {
		h.fail(c, apperr.Wrap(err, "save cart"))
		return
	}
	success(c, http.StatusOK, h.cartResponse(c, ct))
}

// GET /api/v1/cart
func (h *Handler) GetCart(c *gin.Context) {
	success(c, http.StatusOK, h.cartResponse(c, loadCart(c)))
}

// POST /api/v1/cart/items adds a catalog product at its current price.
func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if !h.bind(c, &req) {
		return
	}

	p, err := h.products.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}

	ct := loadCart(c)
	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}
	if ct.ItemQuantity(p.ID)+qty > p.Stock {
		h.fail(c, apperr.Conflictf("insufficient stock for %s", p.Title))
		return
	}

	item := cart.Item{
		ProductID:  p.ID,
		Name:       p.Title,
		PriceCents: p.PriceCents,
		SKU:        p.SKU,
		Slug:       p.Slug,
	}
	if len(p.Images) > 0 {
		item.ImageURL = p.Images[0]
	}
	ct.Add(item, qty)
	h.writeCart(c, ct)
}

// PATCH /api/v1/cart/items/:productId
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if !h.bind(c, &req) {
		return
	}
	ct := loadCart(c)
	if !ct.Contains(c.Param("productId")) {
		h.fail(c, apperr.NotFound("cart item"))
		return
	}
	ct.UpdateQuantity(c.Param("productId"), req.Quantity)
	h.writeCart(c, ct)
}

// POST /api/v1/cart/items/:productId/increment
func (h *Handler) IncrementCartItem(c *gin.Context) {
	ct := loadCart(c)
	if !ct.Contains(c.Param("productId")) {
		h.fail(c, apperr.NotFound("cart item"))
		return
	}
	ct.Increment(c.Param("productId"))
	h.writeCart(c, ct)
}

// POST /api/v1/cart/items/:productId/decrement
func (h *Handler) DecrementCartItem(c *gin.Context) {
	ct := loadCart(c)
	if !ct.Contains(c.Param("productId")) {
		h.fail(c, apperr.NotFound("cart item"))
		return
	}
	ct.Decrement(c.Param("productId"))
	h.writeCart(c, ct)
}

// DELETE /api/v1/cart/items/:productId
func (h *Handler) RemoveCartItem(c *gin.Context) {
	ct := loadCart(c)
	ct.Remove(c.Param("productId"))
	h.writeCart(c, ct)
}

// DELETE /api/v1/cart
func (h *Handler) ClearCart(c *gin.Context) {
	ct := loadCart(c)
	ct.Clear()
	h.writeCart(c, ct)
}

// POST /api/v1/cart/quote prices a list of items from the catalog without
// touching the session.
func (h *Handler) QuoteCart(c *gin.Context) {
	var req QuoteRequest
	if !h.bind(c, &req) {
		return
	}

	var ct cart.Cart
	for _, it := range req.Items {
		p, err := h.products.GetProduct(c.Request.Context(), it.ProductID)
		if err != nil {
			h.fail(c, err)
			return
		}
		ct.Add(cart.Item{ProductID: p.ID, Name: p.Title, PriceCents: p.PriceCents, SKU: p.SKU, Slug: p.Slug}, it.Quantity)
	}
	success(c, http.StatusOK, h.cartResponse(c, &ct))
}

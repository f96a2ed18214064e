package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Wesley-SdS/modern-ecommerce/internal/auth"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/payment"
	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

const maxWebhookBody = 64 << 10

type CreateCheckoutRequest struct {
	Items      []service.CheckoutItem `json:"items" binding:"omitempty,dive"`
	SuccessURL string                 `json:"successUrl" binding:"required,url"`
	CancelURL  string                 `json:"cancelUrl" binding:"required,url"`
}

// POST /api/v1/checkout. Without items the session cart is checked out.
func (h *Handler) CreateCheckout(c *gin.Context) {
	var req CreateCheckoutRequest
	if !h.bind(c, &req) {
		return
	}

	items := req.Items
	if len(items) == 0 {
		for _, it := range loadCart(c).Items {
			items = append(items, service.CheckoutItem{ProductID: it.ProductID, Quantity: it.Quantity})
		}
	}

	user := auth.CurrentUser(c)
	res, err := h.checkout.CreateCheckoutSession(c.Request.Context(), user.ID, service.CheckoutInput{
		Items:      items,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, res)
}

// GET /api/v1/orders
func (h *Handler) ListMyOrders(c *gin.Context) {
	list, err := h.orders.ListOrders(c.Request.Context(), service.OrderQuery{
		UserID: auth.CurrentUser(c).ID,
		Status: models.OrderStatus(c.Query("status")),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 0),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, list)
}

// GET /api/v1/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"), auth.CurrentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, o)
}

// GET /api/v1/admin/orders
func (h *Handler) ListOrders(c *gin.Context) {
	list, err := h.orders.ListOrders(c.Request.Context(), service.OrderQuery{
		Status: models.OrderStatus(c.Query("status")),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 0),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, list)
}

// GET /api/v1/admin/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.orders.DashboardStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, stats)
}

// POST /api/v1/webhooks/stripe. Non-2xx answers make the provider retry, so
// only processing failures return 500.
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	ev, err := payment.ParseWebhook(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	switch {
	case errors.Is(err, payment.ErrNotConfigured):
		log.Error().Msg("stripe webhook received but STRIPE_WEBHOOK_SECRET is not set")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Webhook not configured"})
		return
	case errors.Is(err, payment.ErrMissingSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No signature"})
		return
	case err != nil:
		log.Warn().Err(err).Msg("webhook signature rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if err := h.checkout.HandleEvent(c.Request.Context(), ev); err != nil {
		log.Error().Err(err).Str("event_id", ev.ID).Str("type", ev.Type).Msg("webhook processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

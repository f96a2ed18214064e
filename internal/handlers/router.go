// Package handlers exposes the storefront and back-office over HTTP.
package handlers

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	config "github.com/Wesley-SdS/modern-ecommerce/configs"
	"github.com/Wesley-SdS/modern-ecommerce/internal/auth"
	"github.com/Wesley-SdS/modern-ecommerce/internal/cart"
	"github.com/Wesley-SdS/modern-ecommerce/internal/middleware"
	"github.com/Wesley-SdS/modern-ecommerce/internal/notifier"
	"github.com/Wesley-SdS/modern-ecommerce/internal/payment"
	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

type Handler struct {
	products   *service.ProductService
	categories *service.CategoryService
	banners    *service.BannerService
	users      *service.UserService
	authSvc    *service.AuthService
	finance    *service.FinanceService
	inventory  *service.InventoryService
	wishlist   *service.WishlistService
	orders     *service.OrderService
	checkout   *service.CheckoutService
	health     *service.HealthService

	pricing       cart.Pricing
	currency      string
	webhookSecret string
	oidc          *auth.OIDC
	production    bool
}

// Options wires the router. Gateway, Notifier and OIDC may be nil.
type Options struct {
	DB       *gorm.DB
	Gateway  payment.Gateway
	Notifier notifier.Notifier
	OIDC     *auth.OIDC
	Config   *config.Config
}

func New(opts Options) *Handler {
	cfg := opts.Config
	n := opts.Notifier
	if n == nil {
		n = notifier.Nop{}
	}
	currency := strings.ToUpper(cfg.Stripe.Currency)

	return &Handler{
		products:   service.NewProductService(opts.DB),
		categories: service.NewCategoryService(opts.DB),
		banners:    service.NewBannerService(opts.DB),
		users:      service.NewUserService(opts.DB),
		authSvc:    service.NewAuthService(opts.DB),
		finance:    service.NewFinanceService(opts.DB),
		inventory:  service.NewInventoryService(opts.DB),
		wishlist:   service.NewWishlistService(opts.DB),
		orders:     service.NewOrderService(opts.DB),
		checkout:   service.NewCheckoutService(opts.DB, opts.Gateway, n, currency),
		health:     service.NewHealthService(opts.DB, opts.Gateway, cfg.Version, cfg.Env),

		pricing: cart.Pricing{
			TaxRate:           cfg.Pricing.TaxRate,
			ShippingThreshold: cfg.Pricing.ShippingThreshold,
			ShippingCost:      cfg.Pricing.ShippingCost,
		},
		currency:      currency,
		webhookSecret: cfg.Stripe.WebhookSecret,
		oidc:          opts.OIDC,
		production:    cfg.IsProduction(),
	}
}

// Close waits for in-flight order notifications.
func (h *Handler) Close() {
	h.checkout.Wait()
}

func NewRouter(opts Options) (*gin.Engine, *Handler) {
	cfg := opts.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		service.RegisterJSONNames(v)
	}

	h := New(opts)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
	})
	r.Use(sessions.Sessions(cfg.Session.Name, store))

	r.GET("/api/health", h.Health)

	requireAuth := auth.RequireAuth(h.authSvc)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/average", h.GetAveragePrice)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/categories", h.ListCategories)
		v1.GET("/banners", h.ListActiveBanners)

		v1.GET("/cart", h.GetCart)
		v1.DELETE("/cart", h.ClearCart)
		v1.POST("/cart/items", h.AddToCart)
		v1.PATCH("/cart/items/:productId", h.UpdateCartItem)
		v1.DELETE("/cart/items/:productId", h.RemoveCartItem)
		v1.POST("/cart/items/:productId/increment", h.IncrementCartItem)
		v1.POST("/cart/items/:productId/decrement", h.DecrementCartItem)
		v1.POST("/cart/quote", h.QuoteCart)

		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)
		v1.POST("/auth/logout", h.Logout)
		v1.GET("/auth/me", requireAuth, h.Me)
		if h.oidc != nil {
			v1.GET("/auth/oidc/login", h.OIDCLogin)
			v1.GET("/auth/oidc/callback", h.OIDCCallback)
		}

		v1.POST("/webhooks/stripe", h.StripeWebhook)
	}

	member := v1.Group("")
	member.Use(requireAuth)
	{
		member.GET("/wishlist", h.ListWishlist)
		member.POST("/wishlist", h.AddToWishlist)
		member.DELETE("/wishlist/:productId", h.RemoveFromWishlist)

		member.GET("/orders", h.ListMyOrders)
		member.GET("/orders/:id", h.GetOrder)
		member.POST("/checkout", h.CreateCheckout)
	}

	admin := v1.Group("/admin")
	admin.Use(requireAuth, auth.RequireAdmin())
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/orders", h.ListOrders)

		admin.GET("/products", h.ListProducts)
		admin.POST("/products", h.CreateProduct)
		admin.GET("/products/:id", h.GetProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
		admin.POST("/products/:id/stock", h.AdjustStock)
		admin.GET("/products/:id/inventory", h.ProductInventory)
		admin.GET("/inventory", h.ListInventory)

		admin.GET("/categories", h.ListCategories)
		admin.POST("/categories", h.CreateCategory)

		admin.GET("/banners", h.ListBanners)
		admin.POST("/banners", h.CreateBanner)
		admin.GET("/banners/:id", h.GetBanner)
		admin.PUT("/banners/:id", h.UpdateBanner)
		admin.DELETE("/banners/:id", h.DeleteBanner)
		admin.POST("/banners/:id/toggle", h.ToggleBanner)

		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.PUT("/users/:id", h.UpdateUserRole)
		admin.DELETE("/users/:id", h.DeleteUser)

		fin := admin.Group("/finance")
		fin.GET("/entries", h.ListEntries)
		fin.GET("/categories", h.FinanceCategories)
		fin.GET("/cash-flow", h.CashFlow)
		fin.GET("/accounts-payable", h.ListPayables)
		fin.POST("/accounts-payable", h.CreatePayable)
		fin.GET("/accounts-receivable", h.ListReceivables)
		fin.POST("/accounts-receivable", h.CreateReceivable)
		fin.POST("/:id/mark-paid", h.MarkEntryPaid)
		fin.DELETE("/:id", h.DeleteEntry)
	}

	return r, h
}

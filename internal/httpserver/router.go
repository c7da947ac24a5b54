package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront/internal/domain"
	authsvc "storefront/internal/service/auth"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductService interface {
	List(ctx context.Context) (productsvc.Listing, error)
	Browse(ctx context.Context, category, query string) (productsvc.Page, error)
	Get(ctx context.Context, id string) (*domain.Product, bool, error)
	Categories(ctx context.Context) ([]string, bool, error)
	Create(ctx context.Context, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, id string, patch productsvc.Patch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type AuthService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*domain.User, string, error)
	SignOut(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

type GuestService interface {
	Issue(ctx context.Context) (token, guestID string, err error)
	Lookup(ctx context.Context, token string) (string, error)
	AccessTTLSeconds() int
}

type CartService interface {
	Get(ctx context.Context, key string) (cartsvc.Summary, error)
	Add(ctx context.Context, key, productID string) (cartsvc.Summary, error)
	Remove(ctx context.Context, key, productID string) (cartsvc.Summary, error)
	SetQuantity(ctx context.Context, key, productID string, quantity int) (cartsvc.Summary, error)
	Clear(ctx context.Context, key string) error
	ApplyCoupon(ctx context.Context, key, code string) (cartsvc.Summary, error)
	RemoveCoupon(ctx context.Context, key string) (cartsvc.Summary, error)
	Merge(ctx context.Context, guestKey, userKey string) (cartsvc.Summary, error)
}

type OrderService interface {
	Checkout(ctx context.Context, user *domain.User, info domain.CustomerInfo) (*ordersvc.CheckoutResult, error)
	Get(ctx context.Context, user *domain.User, id string) (*domain.Order, error)
	ListMine(ctx context.Context, user *domain.User, status string) ([]domain.Order, error)
	ListAll(ctx context.Context, actor *domain.User, status string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, actor *domain.User, id, status string) (*domain.Order, error)
	Stats(ctx context.Context, user *domain.User) (ordersvc.Stats, error)
}

// Deps carries the services the router needs.
type Deps struct {
	Products    ProductService
	Auth        AuthService
	Guests      GuestService
	Carts       CartService
	Orders      OrderService
	RateLimiter *RateLimiter
	CORSOrigins []string
}

func (d Deps) validate() error {
	switch {
	case d.Products == nil:
		return errors.New("httpserver: product service required")
	case d.Auth == nil:
		return errors.New("httpserver: auth service required")
	case d.Guests == nil:
		return errors.New("httpserver: guest service required")
	case d.Carts == nil:
		return errors.New("httpserver: cart service required")
	case d.Orders == nil:
		return errors.New("httpserver: order service required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, pool *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", guestHeader},
			ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(pool))

	h := &handlers{deps: deps, logger: logger}
	limit := deps.RateLimiter.Middleware()

	api := router.Group("/api/v1")
	api.Use(identify(logger, deps.Auth, deps.Guests))

	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.GET("/categories", h.listCategories)
	api.GET("/orders/statuses", h.listStatuses)

	auth := api.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", limit, h.login)
	auth.POST("/logout", requireUser(), h.logout)
	auth.GET("/me", requireUser(), h.me)
	auth.POST("/guest", h.issueGuest)

	cart := api.Group("/cart", requireSession())
	cart.GET("", h.getCart)
	cart.DELETE("", h.clearCart)
	cart.POST("/items", h.addCartItem)
	cart.PATCH("/items/:productId", h.setCartQuantity)
	cart.DELETE("/items/:productId", h.removeCartItem)
	cart.POST("/coupon", h.applyCoupon)
	cart.DELETE("/coupon", h.removeCoupon)

	orders := api.Group("/orders", requireUser())
	orders.POST("/checkout", limit, h.checkout)
	orders.GET("", h.listMyOrders)
	orders.GET("/stats", h.orderStats)
	orders.GET("/:id", h.getOrder)

	admin := api.Group("/admin", requireUser(), requireAdmin())
	admin.GET("/products", h.adminListProducts)
	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)
	admin.GET("/orders", h.adminListOrders)
	admin.PATCH("/orders/:id/status", h.updateOrderStatus)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}

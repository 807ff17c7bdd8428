package httpserver

import (
	"context"
	"errors"
	"time"

	"dermayooth-storefront/internal/cart"
	"dermayooth-storefront/internal/domain"
	"dermayooth-storefront/internal/order"
	cartsvc "dermayooth-storefront/internal/service/cart"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type productService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type cartService interface {
	Items(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	AddProduct(ctx context.Context, sessionID, productID string, quantity int) ([]domain.CartLine, error)
	Update(ctx context.Context, sessionID string, in cartsvc.UpdateInput) ([]domain.CartLine, error)
	WithCart(ctx context.Context, sessionID string, fn func(*cart.Store) error) ([]domain.CartLine, error)
}

type orderService interface {
	CheckoutCart(ctx context.Context, store order.CartStore, details domain.CustomerDetails) (order.Result, error)
	QuickOrder(ctx context.Context, p domain.Product, quantity int, details domain.CustomerDetails) (order.Result, error)
	RequestQuote(ctx context.Context, p domain.Product, quantity int, details domain.CustomerDetails) (order.Result, error)
	Contact(ctx context.Context, form order.ContactForm) (order.Result, error)
}

type sessionService interface {
	Issue() string
	Validate(id string) (string, error)
	TTLSeconds() int
}

// Deps groups the services behind the routes.
type Deps struct {
	ProductSvc  productService
	CategorySvc categoryService
	CartSvc     cartService
	OrderSvc    orderService
	SessionSvc  sessionService
	ReadyChecks map[string]ReadinessCheck
}

// Options carries transport settings that do not belong to any service.
type Options struct {
	AllowedOrigins      []string
	SessionCookieSecure bool
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps, opts Options) (*gin.Engine, error) {
	switch {
	case deps.ProductSvc == nil:
		return nil, errors.New("product service is required")
	case deps.CategorySvc == nil:
		return nil, errors.New("category service is required")
	case deps.CartSvc == nil:
		return nil, errors.New("cart service is required")
	case deps.OrderSvc == nil:
		return nil, errors.New("order service is required")
	case deps.SessionSvc == nil:
		return nil, errors.New("session service is required")
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), metricsMiddleware())
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.ReadyChecks, logger))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handlers{deps: deps, logger: logger}

	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/categories", h.listCategories)

	sessions := sessionMiddleware(deps.SessionSvc, opts.SessionCookieSecure)

	shop := router.Group("/", sessions)
	shop.GET("/cart", h.getCart)
	shop.DELETE("/cart", h.clearCart)
	shop.POST("/cart", h.updateCart)
	shop.POST("/cart/items", h.addItem)
	shop.PATCH("/cart/items/:productId", h.updateQuantity)
	shop.POST("/cart/items/:productId/increment", h.increment)
	shop.POST("/cart/items/:productId/decrement", h.decrement)
	shop.DELETE("/cart/items/:productId", h.removeItem)
	shop.POST("/cart/checkout", h.checkout)
	shop.POST("/products/:id/cart", h.addProduct)

	router.POST("/products/:id/order", h.quickOrder)
	router.POST("/products/:id/quote", h.requestQuote)
	router.POST("/contact", h.contact)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	cfg.MaxAge = 12 * time.Hour
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
}

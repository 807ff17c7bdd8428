package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dermayooth-storefront/internal/catalog"
	"dermayooth-storefront/internal/config"
	"dermayooth-storefront/internal/db"
	"dermayooth-storefront/internal/domain"
	"dermayooth-storefront/internal/httpserver"
	"dermayooth-storefront/internal/logging"
	"dermayooth-storefront/internal/order"
	cartrepo "dermayooth-storefront/internal/repository/cart"
	categoryrepo "dermayooth-storefront/internal/repository/category"
	productrepo "dermayooth-storefront/internal/repository/product"
	cartsvc "dermayooth-storefront/internal/service/cart"
	categorysvc "dermayooth-storefront/internal/service/category"
	productsvc "dermayooth-storefront/internal/service/product"
	sessionsvc "dermayooth-storefront/internal/service/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type productSource interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("api stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx := context.Background()
	checks := map[string]httpserver.ReadinessCheck{}

	var pool *pgxpool.Pool
	if cfg.NeedsDatabase() {
		var err error
		pool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return fmt.Errorf("connect db: %w", err)
		}
		defer pool.Close()
		checks["db"] = pool.Ping
	}

	storage, closeStorage, err := cartStorage(ctx, cfg, pool, checks)
	if err != nil {
		return err
	}
	defer closeStorage()

	var products productSource
	var categories categoryrepo.Repository
	if cfg.CatalogAPIURL != "" {
		client := catalog.New(cfg.CatalogAPIURL, nil, catalog.DefaultBreakerConfig(), logger)
		products = client
		categories = categoryrepo.FromProducts(client)
		logger.Info("using remote catalog", zap.String("url", cfg.CatalogAPIURL))
	} else {
		products = productsvc.New(productrepo.NewPostgres(pool, logger))
		categories = categoryrepo.NewPostgres(pool)
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		ProductSvc:  products,
		CategorySvc: categorysvc.New(categories),
		CartSvc:     cartsvc.New(storage, cfg.CartStorageKey, products, logger),
		OrderSvc: order.NewService(order.Config{
			OrdersPhone:  cfg.OrderPhoneCart,
			ProductPhone: cfg.OrderPhoneProduct,
		}, logger),
		SessionSvc:  sessionsvc.New(cfg.SessionTTL()),
		ReadyChecks: checks,
	}, httpserver.Options{
		AllowedOrigins:      cfg.CORSAllowedOrigins,
		SessionCookieSecure: cfg.SessionCookieSecure,
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr), zap.String("cart_storage", cfg.CartStorage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case runErr = <-serverErr:
		logger.Error("server error", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
	return runErr
}

// cartStorage picks the durable cart backend and registers its readiness check.
func cartStorage(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, checks map[string]httpserver.ReadinessCheck) (cartrepo.Storage, func(), error) {
	switch cfg.CartStorage {
	case config.StorageRedis:
		client, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return cartrepo.NewRedis(client, cfg.CartTTL()), func() { _ = client.Close() }, nil
	case config.StoragePostgres:
		return cartrepo.NewPostgres(pool), func() {}, nil
	default:
		return cartrepo.NewMemory(), func() {}, nil
	}
}

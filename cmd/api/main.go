package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/messaging"
	cartrepo "storefront/internal/repository/cart"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	tokenrepo "storefront/internal/repository/token"
	userrepo "storefront/internal/repository/user"
	anonymoussvc "storefront/internal/service/anonymous"
	authsvc "storefront/internal/service/auth"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
	"storefront/internal/storefront/pricing"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	coupons, err := pricing.ParseTable(cfg.Coupons)
	if err != nil {
		logger.Fatalf("parse coupons: %v", err)
	}
	logger.Printf("coupons loaded codes=%s", strings.Join(coupons.Codes(), ","))

	var limiter *httpserver.RateLimiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatalf("parse redis url: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Printf("redis not reachable, rate limiting fails open: %v", err)
		}
		limiter = httpserver.NewRateLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow, logger)
	} else {
		logger.Printf("REDIS_URL not set, rate limiting disabled")
	}

	productService := productsvc.New(productrepo.NewPostgres(dbpool, logger), cfg.SampleFallback, logger)
	authService := authsvc.New(userrepo.NewPostgres(dbpool, logger), tokenrepo.NewPostgres(dbpool), cfg.JWTSecret, cfg.AccessTokenTTL, logger)
	if _, err := authService.PurgeExpired(ctx); err != nil {
		logger.Printf("purge expired tokens: %v", err)
	}
	guestService := anonymoussvc.New(cfg.JWTSecret, cfg.GuestTokenTTL)
	cartService := cartsvc.New(cartrepo.NewPostgres(dbpool, logger), productService, coupons, logger)
	orderService := ordersvc.New(orderrepo.NewPostgres(dbpool, logger), cartService, messaging.WhatsApp{
		Phone:     cfg.WhatsAppPhone,
		StoreName: cfg.StoreName,
	}, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Products:    productService,
		Auth:        authService,
		Guests:      guestService,
		Carts:       cartService,
		Orders:      orderService,
		RateLimiter: limiter,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/db"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	tokenrepo "storefront/internal/repository/token"
	userrepo "storefront/internal/repository/user"
	"storefront/internal/seed"
	authsvc "storefront/internal/service/auth"
)

func main() {
	var demoEmail, demoPassword string
	flag.StringVar(&demoEmail, "demo-email", "usuario@demo.com", "Email of the demo customer")
	flag.StringVar(&demoPassword, "demo-password", "", "Password for the demo customer; empty skips demo orders")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	users := userrepo.NewPostgres(pool, logger)
	auth := authsvc.New(users, tokenrepo.NewPostgres(pool), cfg.JWTSecret, cfg.AccessTokenTTL, logger)
	seeder := seed.New(productrepo.NewPostgres(pool, logger), auth, users, orderrepo.NewPostgres(pool, logger), logger)

	rep, err := seeder.Apply(ctx, seed.Options{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		DemoEmail:     demoEmail,
		DemoPassword:  demoPassword,
	})
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	if _, err := auth.PurgeExpired(ctx); err != nil {
		logger.Printf("purge expired tokens: %v", err)
	}

	logger.Printf("seed applied products=%d admin=%s demo_user=%s orders=%d", rep.Products, rep.Admin, rep.DemoUser, rep.Orders)
}

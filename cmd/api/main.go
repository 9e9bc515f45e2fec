package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/vitrinalabs/vitrina-backend/api/routes"
	"github.com/vitrinalabs/vitrina-backend/internal/cart"
	"github.com/vitrinalabs/vitrina-backend/internal/combos"
	"github.com/vitrinalabs/vitrina-backend/internal/coupons"
	"github.com/vitrinalabs/vitrina-backend/internal/products"
	"github.com/vitrinalabs/vitrina-backend/internal/shipping"
	"github.com/vitrinalabs/vitrina-backend/pkg/config"
	"github.com/vitrinalabs/vitrina-backend/pkg/db"
	"github.com/vitrinalabs/vitrina-backend/pkg/logger"
	"github.com/vitrinalabs/vitrina-backend/pkg/migrate"
	"github.com/vitrinalabs/vitrina-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	productRepo := products.NewRepository(dbClient.DB())
	productService, err := products.NewService(productRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	comboService, err := combos.NewService(combos.NewRepository(dbClient.DB()), logg, cfg.Storefront.ComboFetchTimeout)
	if err != nil {
		logg.Error(context.Background(), "failed to create combo service", err)
		os.Exit(1)
	}

	sessionStore, err := coupons.NewRedisSessionStore(redisClient, cfg.Storefront.CouponSessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create coupon session store", err)
		os.Exit(1)
	}
	couponService, err := coupons.NewService(coupons.NewRepository(dbClient.DB()), sessionStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create coupon service", err)
		os.Exit(1)
	}

	shippingService, err := shipping.NewService(shipping.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create shipping service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(productRepo, comboService, couponService, shippingService, cfg.Storefront, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			productService,
			comboService,
			couponService,
			shippingService,
			cartService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

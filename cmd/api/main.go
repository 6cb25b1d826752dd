package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/feiroulabs/feirou-backend/api/routes"
	"github.com/feiroulabs/feirou-backend/internal/cart"
	"github.com/feiroulabs/feirou-backend/internal/catalog"
	"github.com/feiroulabs/feirou-backend/internal/checkout"
	"github.com/feiroulabs/feirou-backend/internal/orders"
	"github.com/feiroulabs/feirou-backend/pkg/config"
	"github.com/feiroulabs/feirou-backend/pkg/db"
	"github.com/feiroulabs/feirou-backend/pkg/db/models"
	"github.com/feiroulabs/feirou-backend/pkg/logger"
	"github.com/feiroulabs/feirou-backend/pkg/metrics"
	"github.com/feiroulabs/feirou-backend/pkg/money"
	"github.com/feiroulabs/feirou-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.AutoMigrate {
		if err := dbClient.DB().AutoMigrate(&models.OrderRecord{}, &models.OrderItemRecord{}); err != nil {
			logg.Error(context.Background(), "failed to run auto migration", err)
			os.Exit(1)
		}
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

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(registry)

	cartService, err := cart.NewService(
		cart.NewRedisSnapshotStore(redisClient, cfg.Checkout.CartTTL),
		engineMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepo(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	catalogProvider, err := buildCatalogProvider(cfg, redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog provider", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(
		checkout.NewRedisSessionStore(redisClient, cfg.Checkout.SessionTTL),
		cartService,
		catalogProvider,
		ordersService,
		cfg.Checkout,
		cfg.WhatsApp,
		engineMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
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
			cfg, logg, dbClient, redisClient, registry,
			cartService, checkoutService, ordersService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildCatalogProvider(cfg *config.Config, redisClient *redis.Client, logg *logger.Logger) (catalog.Provider, error) {
	fee, err := money.Parse(cfg.Catalog.DefaultDeliveryFee)
	if err != nil {
		return nil, err
	}
	minimum, err := money.Parse(cfg.Catalog.DefaultMinimumOrder)
	if err != nil {
		return nil, err
	}

	static := catalog.NewStaticProvider(nil, catalog.DeliveryConfig{
		Fee:          fee,
		MinimumOrder: minimum,
	})
	return catalog.NewCachedProvider(static, redisClient, cfg.Catalog.CacheTTL, logg), nil
}

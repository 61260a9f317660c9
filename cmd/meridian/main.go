package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meridian-pos/meridian-pos/internal/app"
	"github.com/meridian-pos/meridian-pos/internal/auth"
	"github.com/meridian-pos/meridian-pos/internal/catalog/categories"
	"github.com/meridian-pos/meridian-pos/internal/catalog/items"
	"github.com/meridian-pos/meridian-pos/internal/catalog/variants"
	"github.com/meridian-pos/meridian-pos/internal/discounts"
	"github.com/meridian-pos/meridian-pos/internal/masterdata"
	"github.com/meridian-pos/meridian-pos/internal/observability"
	"github.com/meridian-pos/meridian-pos/internal/platform/cache"
	"github.com/meridian-pos/meridian-pos/internal/platform/db"
	"github.com/meridian-pos/meridian-pos/internal/sales/orders"
	"github.com/meridian-pos/meridian-pos/internal/sales/payments"
	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/taxes"
	"github.com/meridian-pos/meridian-pos/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())

	categoriesRepo := categories.NewRepository(pool)
	taxesRepo := taxes.NewRepository(pool)
	discountsRepo := discounts.NewRepository(pool)
	masterdataRepo := masterdata.NewRepository(pool)
	itemsRepo := items.NewRepository(pool)
	variantsRepo := variants.NewRepository(pool)
	ordersRepo := orders.NewRepository(pool)
	paymentsRepo := payments.NewRepository(pool)
	usersRepo := users.NewRepository(pool)

	categoriesHandler := categories.NewHandler(logger, categories.NewService(categoriesRepo))
	taxesHandler := taxes.NewHandler(logger, taxes.NewService(taxesRepo))
	discountsHandler := discounts.NewHandler(logger, discounts.NewService(discountsRepo))
	masterdataHandler := masterdata.NewHandler(logger, masterdata.NewService(masterdataRepo))
	itemsHandler := items.NewHandler(logger, items.NewService(itemsRepo, categoriesRepo, taxesRepo, discountsRepo, masterdataRepo))
	variantsHandler := variants.NewHandler(logger, variants.NewService(variantsRepo, itemsRepo))
	ordersHandler := orders.NewHandler(logger, orders.NewService(ordersRepo, masterdataRepo, masterdataRepo, masterdataRepo, masterdataRepo))
	paymentsHandler := payments.NewHandler(logger, payments.NewService(paymentsRepo, ordersRepo, masterdataRepo))
	usersHandler := users.NewHandler(logger, users.NewService(usersRepo))
	authHandler := auth.NewHandler(logger, auth.NewService(usersRepo), sessionManager)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		SessionManager:    sessionManager,
		Metrics:           observability.NewMetrics(),
		AuthHandler:       authHandler,
		CategoriesHandler: categoriesHandler,
		ItemsHandler:      itemsHandler,
		VariantsHandler:   variantsHandler,
		TaxesHandler:      taxesHandler,
		DiscountsHandler:  discountsHandler,
		MasterDataHandler: masterdataHandler,
		OrdersHandler:     ordersHandler,
		PaymentsHandler:   paymentsHandler,
		UsersHandler:      usersHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

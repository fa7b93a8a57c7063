package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/commerce"
	"github.com/fjod/storefront/internal/config"
	h "github.com/fjod/storefront/internal/http"
	"github.com/fjod/storefront/internal/logger"
	"github.com/fjod/storefront/internal/metrics"
	"github.com/fjod/storefront/internal/reconcile"
	"github.com/fjod/storefront/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	variant, err := reconcile.ParseVariant(cfg.PaymentMethods)
	if err != nil {
		zl.Fatal("invalid payment methods", zap.Error(err))
	}

	ctx := context.Background()

	snapshots, closeStorage, err := storage.Open(ctx, cfg)
	if err != nil {
		zl.Fatal("failed to open cart storage", zap.String("backend", cfg.CartStorage), zap.Error(err))
	}
	defer closeStorage()

	client := commerce.NewClient(commerce.Config{
		BaseURL:     cfg.CommerceAPIURL,
		Timeout:     cfg.RequestTimeout,
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	}, zl.Named("commerce"))

	store := cart.NewStore(ctx, snapshots, client,
		cart.WithStorageKey(cfg.CartStorageKey),
		cart.WithNotifier(cart.NewLogNotifier(zl.Named("cart"))),
		cart.WithLogger(zl.Named("cart")),
	)
	service := reconcile.NewService(client, client, zl.Named("reconcile"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := h.NewRouter(h.RouterConfig{
		Cart:               h.NewCartHandler(store),
		Checkout:           h.NewCheckoutHandler(store, cfg.DefaultCustomerID, cfg.RequestTimeout),
		Products:           h.NewProductHandler(client, cfg.RequestTimeout),
		Orders:             h.NewOrdersHandler(client, service, variant, cfg.RequestTimeout, zl.Named("orders")),
		Metrics:            metrics.NewServerMetrics(reg, "http"),
		MetricsHandler:     metrics.Handler(reg),
		Log:                zl.Named("http"),
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: 1 << 20, // 1MB
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("storefront starting",
			zap.String("port", cfg.HTTPPort),
			zap.String("commerce_api", cfg.CommerceAPIURL),
			zap.String("cart_storage", cfg.CartStorage),
			zap.Int("cart_lines", len(store.Lines())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
		return
	}

	zl.Info("server exited")
}

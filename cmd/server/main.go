package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/safescan/backend/config"
	httpDelivery "github.com/safescan/backend/internal/delivery/http"
	"github.com/safescan/backend/internal/infrastructure/catalog"
	"github.com/safescan/backend/internal/infrastructure/openfoodfacts"
	"github.com/safescan/backend/internal/logger"
	"github.com/safescan/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("starting SafeScan backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize infrastructure dependencies
	validator := usecase.NewValidator()
	store, err := catalog.LoadFile(cfg.Catalog.SeedPath, validator)
	if err != nil {
		zlog.Fatal("failed to load catalog", zap.String("seed_path", cfg.Catalog.SeedPath), zap.Error(err))
	}
	zlog.Info("catalog loaded", zap.Int("products", store.Size()))

	parser := usecase.NewIngredientParser(zlog.Named("ingredients"))
	offClient := openfoodfacts.NewClient(openfoodfacts.Config{
		BaseURL:           cfg.OpenFoodFacts.BaseURL,
		Timeout:           cfg.OpenFoodFacts.Timeout,
		RequestsPerMinute: cfg.OpenFoodFacts.RequestsPerMinute,
		UserAgent:         cfg.OpenFoodFacts.UserAgent,
	}, parser, zlog.Named("openfoodfacts"))

	// Initialize usecase layer
	productService := usecase.NewProductService(
		store,
		offClient,
		usecase.ProductServiceConfig{
			DefaultSensitivity: cfg.Scoring.DefaultSensitivity,
			MaxRecommendations: cfg.Recommend.MaxResults,
			MinConfidence:      cfg.Recommend.MinConfidence,
		},
		zlog.Named("products"),
	)

	handler := httpDelivery.NewHandler(productService)
	router := httpDelivery.SetupRouter(cfg, handler, zlog.Named("http"))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}

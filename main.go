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

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"storefront-server/config"
	"storefront-server/database"
	"storefront-server/handlers"
	"storefront-server/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	catalog, err := openCatalog(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open catalog", zap.Error(err))
	}
	defer catalog.Close()

	uploader, err := newUploader(cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up uploads", zap.Error(err))
	}

	checkout := services.NewStripeCheckout(services.CheckoutConfig{
		SecretKey:  cfg.StripeSecretKey,
		Currency:   cfg.CheckoutCurrency,
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
	}, logger)
	if !checkout.Configured() {
		logger.Warn("STRIPE_SECRET_KEY not set, checkout is disabled")
	}

	handlers.InitializeHandlers(handlers.Dependencies{
		Catalog:   catalog,
		Posts:     database.NewPostsStore(cfg.PostsFile),
		Uploader:  uploader,
		Checkout:  checkout,
		Logger:    logger,
		AdminUser: cfg.AdminUser,
		AdminPass: cfg.AdminPass,
	})

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		handlers.RequestID(),
		handlers.RequestLogger(logger),
		handlers.BodyLimit(int64(cfg.BodyLimitMB)<<20),
	)
	handlers.RegisterRoutes(router, cfg.StaticDir, cfg.UploadDir)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: false,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("url", "http://localhost:"+cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// openCatalog picks PostgreSQL when DATABASE_URL is set, else the JSON file.
func openCatalog(cfg *config.Config, logger *zap.Logger) (database.Catalog, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("using file catalog", zap.String("path", cfg.ProductsFile))
		return database.NewFileCatalog(cfg.ProductsFile), nil
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.InitializeTables(logger); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("using postgres catalog")
	return database.NewPostgresCatalog(db), nil
}

// newUploader prefers Cloudinary and falls back to local disk.
func newUploader(cfg *config.Config, logger *zap.Logger) (services.Uploader, error) {
	if cfg.CloudinaryURL != "" {
		cld, err := services.NewCloudinaryService(cfg.CloudinaryURL, cfg.UploadFolder, logger)
		if err == nil {
			return cld, nil
		}
		logger.Error("cloudinary unavailable, storing uploads on disk", zap.Error(err))
	}
	return services.NewDiskUploader(cfg.UploadDir)
}

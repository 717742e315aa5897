package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adar-commits/quotes/internal/config"
	"github.com/adar-commits/quotes/internal/database"
	"github.com/adar-commits/quotes/internal/http/handler"
	"github.com/adar-commits/quotes/internal/http/middleware"
	"github.com/adar-commits/quotes/internal/http/router"
	"github.com/adar-commits/quotes/internal/logger"
	"github.com/adar-commits/quotes/internal/repository"
	"github.com/adar-commits/quotes/internal/service"
	"github.com/adar-commits/quotes/internal/webhook"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize repositories
	quoteRepo := repository.NewQuoteRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	// Initialize signed-quote webhook (nil when unconfigured)
	notifier := webhook.New(cfg.Webhook.URL, cfg.Webhook.TimeoutDuration(), log)
	if notifier == nil {
		log.Info("Signed-quote webhook not configured, notifications disabled")
	}

	// Initialize services
	quoteService := service.NewQuoteService(quoteRepo, templateRepo, notifier, cfg.App.PublicBaseURL, log)
	templateService := service.NewTemplateService(templateRepo, log)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	quoteHandler := handler.NewQuoteHandler(quoteService, log)
	templateHandler := handler.NewTemplateHandler(templateService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		rateLimiter,
		quoteHandler,
		templateHandler,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

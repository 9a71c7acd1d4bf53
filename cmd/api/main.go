package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/getmentor/inquiry-api/config"
	"github.com/getmentor/inquiry-api/internal/email"
	"github.com/getmentor/inquiry-api/internal/handlers"
	"github.com/getmentor/inquiry-api/internal/services"
	"github.com/getmentor/inquiry-api/internal/validation"
	"github.com/getmentor/inquiry-api/pkg/httpclient"
	"github.com/getmentor/inquiry-api/pkg/logger"
	"github.com/getmentor/inquiry-api/pkg/metrics"
	"github.com/getmentor/inquiry-api/pkg/profiling"
	"github.com/getmentor/inquiry-api/pkg/tracing"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Inquiry API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("email_provider", cfg.Email.Provider),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.Init(cfg.Observability.ServiceName)

	// Sends wait as long as the provider takes; only the caller can cancel
	httpClient := httpclient.NewStandardClient(0)

	sender, err := email.NewSender(cfg.Email, httpClient)
	if err != nil {
		logger.Fatal("Failed to initialize email sender", zap.Error(err))
	}

	inquiryService := services.NewInquiryService(sender, cfg.Email)

	inquiryHandler := handlers.NewInquiryHandler(validation.NewEngine(), inquiryService)
	healthHandler := handlers.NewHealthHandler(cfg.Email.Provider)

	gin.SetMode(cfg.Server.GinMode)
	router := newRouter(cfg, inquiryHandler, healthHandler)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

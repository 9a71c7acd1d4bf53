package main

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/getmentor/inquiry-api/config"
	"github.com/getmentor/inquiry-api/internal/handlers"
	"github.com/getmentor/inquiry-api/internal/middleware"
	"github.com/getmentor/inquiry-api/pkg/metrics"
)

// newRouter wires middleware and routes onto a fresh gin engine
func newRouter(cfg *config.Config, inquiryHandler *handlers.InquiryHandler, healthHandler *handlers.HealthHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := slices.Clone(cfg.Server.AllowedOrigins)
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader, "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	api := router.Group("/api")
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1/inquiry")
	v1.GET("/rules", inquiryHandler.Rules)
	v1.POST("/validate-field", middleware.BodySizeLimitMiddleware(middleware.DefaultMaxBodySize), inquiryHandler.ValidateField)
	v1.POST("", middleware.BodySizeLimitMiddleware(middleware.DefaultMaxBodySize), inquiryHandler.Submit)

	return router
}

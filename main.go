package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/legalclear/backend/analysis"
	"github.com/legalclear/backend/config"
	"github.com/legalclear/backend/handler"
	"github.com/legalclear/backend/middleware"
	"github.com/legalclear/backend/pkg/logger"
	"github.com/legalclear/backend/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize services
	minioSvc, err := service.NewMinioService(&cfg.Minio)
	if err != nil {
		slog.Error("failed to initialize MINIO service", "error", err)
		os.Exit(1)
	}

	// Ensure bucket exists
	if err := minioSvc.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure MINIO bucket", "error", err)
		os.Exit(1)
	}

	store, err := service.NewDocumentStore(cfg.Store.Path)
	if err != nil {
		slog.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// The generation and recognition services are optional: without them
	// every analysis uses the deterministic fallback pipeline.
	var generator analysis.TextGenerator
	if cfg.Gemini.APIKey != "" {
		generator = service.NewGeminiClient(&cfg.Gemini)
	} else {
		slog.Warn("no gemini api key configured, analyses will use fallback output")
	}
	var recognizer analysis.EntityRecognizer
	if cfg.NER.APIURL != "" {
		recognizer = service.NewNERClient(&cfg.NER)
	}
	var extractor handler.Extractor
	if cfg.Extractor.APIURL != "" {
		extractor = service.NewExtractorClient(&cfg.Extractor)
	} else {
		slog.Warn("no extractor configured, uploaded documents will have no text")
	}

	engine := analysis.NewEngine(generator, recognizer)

	// Initialize handlers
	documentHandler := handler.NewDocumentHandler(minioSvc, extractor, engine, store, &cfg.Upload)
	chatHandler := handler.NewChatHandler(service.NewChatEngine(generator), store)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		api.POST("/documents/upload", documentHandler.Upload)
		api.GET("/documents", documentHandler.List)
		api.GET("/documents/:id", documentHandler.Get)
		api.GET("/documents/:id/status", documentHandler.GetStatus)
		api.GET("/documents/:id/analysis", documentHandler.GetAnalysis)
		api.GET("/documents/:id/schema", documentHandler.GetSchema)
		api.DELETE("/documents/:id", documentHandler.Delete)
		api.POST("/documents/:id/chat", chatHandler.SendMessage)
		api.GET("/documents/:id/chat", chatHandler.GetHistory)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"bookstore/database"
	"bookstore/internal/config"
	"bookstore/internal/http-api/handler"
	"bookstore/internal/http-api/middleware"
	"bookstore/internal/http-api/repository"
	"bookstore/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	authorRepo := repository.NewAuthorRepo(db)
	bookRepo := repository.NewBookRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	// Services. No mailer is configured by default: receipts are
	// rendered and returned in the API response, delivery stays off.
	authService := service.NewAuthService(userRepo, cfg)
	authorService := service.NewAuthorService(authorRepo)
	bookService := service.NewBookService(bookRepo, authorRepo)
	orderService := service.NewOrderService(db, orderRepo, userRepo, nil, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	authorHandler := handler.NewAuthorHandler(authorService)
	bookHandler := handler.NewBookHandler(bookService, orderService)
	orderHandler := handler.NewOrderHandler(orderService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "API is alive and database connected"})
	})

	authMW := middleware.AuthMiddleware(authService)

	api := r.Group("/api/v1")
	authHandler.RegisterRoutes(api.Group("/users"), authMW)
	bookHandler.RegisterRoutes(api.Group("/books"), authMW)
	authorHandler.RegisterRoutes(api.Group("/authors"), authMW)
	orderHandler.RegisterRoutes(api.Group("/orders"), authMW)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	default:
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

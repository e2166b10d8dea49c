package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-site/config"
	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/delivery/http/web"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/repository/memory"
	"go-portfolio-site/internal/repository/redisstore"
	"go-portfolio-site/internal/repository/static"
	"go-portfolio-site/internal/usecase"
	"go-portfolio-site/pkg/avatar"
	"go-portfolio-site/pkg/email"
	"go-portfolio-site/pkg/logger"
	"go-portfolio-site/pkg/metrics"
	"go-portfolio-site/pkg/redis"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting portfolio site", "port", cfg.Port)

	// 3. Setup Redis (optional)
	var redisClient *goredis.Client
	if cfg.UpstashRedisURL != "" {
		redisClient, err = redis.Connect(context.Background(), redis.Config{
			URL:      cfg.UpstashRedisURL,
			Password: cfg.UpstashRedisPassword,
		})
		if err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory sessions", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// 4. Setup Repositories
	var sessionRepo domain.SessionRepository = memory.NewSessionRepository()
	if redisClient != nil {
		sessionRepo = redisstore.NewSessionRepository(redisClient)
	}
	contentRepo := static.NewContentRepository()

	// 5. Setup Email Service
	transport := email.NewSMTPTransport(email.SMTPConfig{
		Username: static.OwnerEmail,
		Password: cfg.EmailPassword,
		Timeout:  cfg.SMTPTimeout,
	})
	emailService := email.NewEmailService(static.OwnerEmail, cfg.EmailPassword, transport)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not configured - contact messages will not be forwarded")
	}

	// 6. Generate Avatar
	img, err := avatar.NewGenerator(avatar.DefaultText, avatar.DefaultFontSources()).Generate()
	if err != nil {
		logger.Log.Error("Failed to generate avatar", "error", err)
		os.Exit(1)
	}
	for _, attempt := range img.Attempts {
		if attempt.Err != nil {
			logger.Log.Debug("Avatar font unavailable", "font", attempt.Source, "error", attempt.Err)
		}
	}
	logger.Log.Info("Avatar generated", "font", img.Font, "bytes", len(img.PNG))

	// 7. Setup UseCases
	appMetrics := metrics.New()
	validate := validator.New()
	portfolioUC := usecase.NewPortfolioUsecase(contentRepo)
	dispatcher := usecase.NewObservedDispatcher(usecase.NewMessageDispatcher(emailService), appMetrics)
	contactUC := usecase.NewContactUsecase(dispatcher, validate)

	// 8. Setup Router
	router, err := web.NewRouter(web.RouterDeps{
		PortfolioUC: portfolioUC,
		ContactUC:   contactUC,
		HealthUC:    usecase.NewHealthUsecase(redisClient),
		Sessions:    middleware.NewSessionManager(sessionRepo, cfg.SessionTTL, cfg.SessionCookieSecure),
		Avatar:      img,
		Redis:       redisClient,
		Metrics:     appMetrics,
		Config:      cfg,
	})
	if err != nil {
		logger.Log.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

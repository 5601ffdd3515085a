package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobsite-backend/config"
	v1 "jobsite-backend/internal/delivery/http/v1"
	"jobsite-backend/internal/repository/postgres"
	"jobsite-backend/internal/repository/redisrepo"
	"jobsite-backend/internal/usecase"
	"jobsite-backend/pkg/database"
	"jobsite-backend/pkg/email"
	"jobsite-backend/pkg/logger"
	"jobsite-backend/pkg/redis"
	"jobsite-backend/pkg/token"
	"jobsite-backend/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title           Jobsite Backend API
// @version         1.0
// @description     Job listing platform backend using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	logger.Log.Info("Starting jobsite backend", "port", cfg.Port)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient, err := redis.New(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		logger.Log.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	dashboardRepo := postgres.NewDashboardRepository(dbPool)
	tokenStore := redisrepo.NewAuthTokenStore(redisClient)

	mailer := email.NewService(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - notifications will be skipped")
	}

	tokens := token.NewService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	authUC := usecase.NewAuthUsecase(userRepo, tokens, tokenStore, mailer, cfg.FrontendURL, cfg.ResetTokenTTL)
	profileUC := usecase.NewProfileUsecase(profileRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, applicationRepo, mailer)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo)
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ProfileUC:     profileUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		DashboardUC:   dashboardUC,
		UserRepo:      userRepo,
		Tokens:        tokens,
		Redis:         redisClient,
		Config:        cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful shutdown
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

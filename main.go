package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskhub-service/internal/config"
	"taskhub-service/internal/handlers"
	"taskhub-service/internal/metrics"
	"taskhub-service/internal/middleware"
	"taskhub-service/internal/models"
	natsclient "taskhub-service/internal/nats"
	"taskhub-service/internal/redis"
	"taskhub-service/internal/repository"
	"taskhub-service/internal/services"
)

func main() {
	// Load .env if present; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := config.New()
	logger := initLogger(cfg)

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize database")
	}

	if err := autoMigrate(db); err != nil {
		logger.WithError(err).Fatal("failed to migrate database")
	}

	// Redis backs the login throttle; the service runs without it
	var redisClient *redis.Client
	redisClient, err = redis.NewClient(cfg.Redis)
	if err != nil {
		logger.WithError(err).Warn("failed to connect to Redis, login throttling disabled")
		redisClient = nil
	} else {
		logger.Info("connected to Redis")
	}

	// NATS carries best-effort domain events; the service runs without it
	var nc *natsclient.Client
	if cfg.NATS.Enabled {
		nc, err = natsclient.NewClient(&natsclient.Config{URL: cfg.NATS.URL})
		if err != nil {
			logger.WithError(err).Warn("failed to connect to NATS, event publishing disabled")
			nc = nil
		} else {
			logger.Info("connected to NATS")
			defer nc.Close()
		}
	}

	metricsCollector := metrics.New()
	metricsStop := make(chan struct{})
	go metricsCollector.WatchDBPool(db, metricsStop)

	// Repositories
	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Services
	passwords := services.NewPasswordService(cfg.Auth.BcryptCost)
	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiryHours)
	auditSvc := services.NewAuditService(auditRepo, logger)

	authSvc := services.NewAuthService(tenantRepo, userRepo, passwords, tokens, auditSvc, logger)
	if redisClient != nil {
		authSvc.SetLoginThrottle(redisClient)
	}
	authSvc.SetEventPublisher(nc)

	tenantSvc := services.NewTenantService(tenantRepo)

	userSvc := services.NewUserService(userRepo, passwords, auditSvc, logger)
	userSvc.SetEventPublisher(nc)

	projectSvc := services.NewProjectService(projectRepo, auditSvc, logger)
	projectSvc.SetEventPublisher(nc)

	taskSvc := services.NewTaskService(taskRepo, projectRepo, userRepo, auditSvc, logger)
	taskSvc.SetEventPublisher(nc)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, nc)
	authHandler := handlers.NewAuthHandler(authSvc, metricsCollector)
	tenantHandler := handlers.NewTenantHandler(tenantSvc)
	userHandler := handlers.NewUserHandler(userSvc, metricsCollector)
	projectHandler := handlers.NewProjectHandler(projectSvc, metricsCollector)
	taskHandler := handlers.NewTaskHandler(taskSvc)
	auditHandler := handlers.NewAuditHandler(auditSvc)

	if cfg.App.SeedOnStartup {
		seeder := services.NewSeeder(db, passwords, logger)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if err := seeder.Run(ctx); err != nil {
				logger.WithError(err).Warn("database seeding failed")
			}
		}()
	}

	router := setupRouter(
		cfg,
		logger,
		tokens,
		metricsCollector,
		healthHandler,
		authHandler,
		tenantHandler,
		userHandler,
		projectHandler,
		taskHandler,
		auditHandler,
	)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("addr", server.Addr).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	close(metricsStop)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.WithError(err).Error("error closing Redis connection")
		}
	}

	logger.Info("server exited")
}

func setupRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	tokens *services.TokenService,
	metricsCollector *metrics.Metrics,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	tenantHandler *handlers.TenantHandler,
	userHandler *handlers.UserHandler,
	projectHandler *handlers.ProjectHandler,
	taskHandler *handlers.TaskHandler,
	auditHandler *handlers.AuditHandler,
) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(cfg.App.CORSOrigins) == 1 && cfg.App.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.App.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}

	router.Use(cors.New(corsConfig))
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(metricsCollector.Handler())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ready", healthHandler.Ready)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.Auth(tokens), authHandler.Me)
		}

		protected := api.Group("")
		protected.Use(middleware.Auth(tokens))
		{
			protected.GET("/tenants", tenantHandler.List)

			protected.GET("/users", userHandler.List)
			protected.POST("/users", userHandler.Create)
			protected.GET("/users/:id", userHandler.Get)

			protected.GET("/projects", projectHandler.List)
			protected.POST("/projects", projectHandler.Create)
			protected.GET("/projects/:id", projectHandler.Get)
			protected.PATCH("/projects/:id", projectHandler.Update)
			protected.DELETE("/projects/:id", projectHandler.Delete)

			protected.GET("/tasks", taskHandler.List)
			protected.POST("/tasks", taskHandler.Create)
			protected.GET("/tasks/:id", taskHandler.Get)
			protected.PATCH("/tasks/:id", taskHandler.Update)
			protected.DELETE("/tasks/:id", taskHandler.Delete)

			protected.GET("/audit-logs", auditHandler.List)
		}
	}

	return router
}

func initLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func initDatabase(cfg *config.Config, logger *logrus.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode)

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the services rely on for 409s.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("connected to database")
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.AuditLog{},
	)
}

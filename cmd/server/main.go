package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	billingapp "github.com/rentms/backend/internal/application/billing"
	complaintapp "github.com/rentms/backend/internal/application/complaint"
	identityapp "github.com/rentms/backend/internal/application/identity"
	reportapp "github.com/rentms/backend/internal/application/report"
	"github.com/rentms/backend/internal/infrastructure/auth"
	"github.com/rentms/backend/internal/infrastructure/config"
	"github.com/rentms/backend/internal/infrastructure/logger"
	"github.com/rentms/backend/internal/infrastructure/notification"
	"github.com/rentms/backend/internal/infrastructure/persistence"
	"github.com/rentms/backend/internal/interfaces/http/handler"
	"github.com/rentms/backend/internal/interfaces/http/middleware"
	"github.com/rentms/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting RentMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	// Token blacklist: Redis when reachable, in-memory otherwise
	blacklist := newTokenBlacklist(cfg, log)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	complaintRepo := persistence.NewGormComplaintRepository(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	hasher := auth.NewBcryptHasher()

	var notifier notification.Notifier = notification.NewNopNotifier()
	if cfg.SMTP.NotificationsEnabled() {
		notifier = notification.NewSMTPNotifier(cfg.SMTP, log)
		log.Info("Bill notifications enabled", zap.String("smtp_host", cfg.SMTP.Host))
	}

	ratePerUnit, err := decimal.NewFromString(cfg.Billing.RatePerUnit)
	if err != nil {
		log.Fatal("Invalid billing.rate_per_unit", zap.String("value", cfg.Billing.RatePerUnit), zap.Error(err))
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, hasher, jwtService, blacklist)
	tenantService := identityapp.NewTenantService(userRepo, billRepo, complaintRepo, hasher)
	billService := billingapp.NewBillService(billRepo, userRepo, notifier, ratePerUnit)
	complaintService := complaintapp.NewComplaintService(complaintRepo, userRepo)
	dashboardService := reportapp.NewDashboardService(userRepo, billRepo, complaintRepo)

	// Seed the bootstrap admin account
	created, err := authService.EnsureDefaultAdmin(context.Background(), cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		log.Fatal("Failed to ensure default admin account", zap.Error(err))
	}
	if created {
		log.Info("Default admin account created", zap.String("email", cfg.Admin.Email))
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	billHandler := handler.NewBillHandler(billService)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	// Global middleware
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Public endpoints
	engine.GET("/health", healthHandler(db))
	engine.POST("/api/v1/auth/login", authHandler.Login)

	// Protected API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	}))

	authRoutes := router.NewGroup("/auth")
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.POST("/change-password", authHandler.ChangePassword)

	tenantRoutes := router.NewGroup("/tenants")
	tenantRoutes.Use(middleware.RequireAdmin())
	tenantRoutes.POST("", tenantHandler.Create)
	tenantRoutes.GET("", tenantHandler.List)
	tenantRoutes.GET("/:id", tenantHandler.Get)
	tenantRoutes.PUT("/:id", tenantHandler.Update)
	tenantRoutes.DELETE("/:id", tenantHandler.Delete)

	billRoutes := router.NewGroup("/bills")
	billRoutes.GET("/my", middleware.RequireRole("tenant"), billHandler.ListMine)
	billRoutes.GET("/my/current", middleware.RequireRole("tenant"), billHandler.CurrentMine)
	billRoutes.POST("", middleware.RequireAdmin(), billHandler.Generate)
	billRoutes.GET("", middleware.RequireAdmin(), billHandler.List)
	billRoutes.GET("/:id", middleware.RequireAdmin(), billHandler.Get)
	billRoutes.PUT("/:id", middleware.RequireAdmin(), billHandler.Update)
	billRoutes.PATCH("/:id/status", middleware.RequireAdmin(), billHandler.SetStatus)
	billRoutes.DELETE("/:id", middleware.RequireAdmin(), billHandler.Delete)

	complaintRoutes := router.NewGroup("/complaints")
	complaintRoutes.POST("", middleware.RequireRole("tenant"), complaintHandler.Create)
	complaintRoutes.GET("/my", middleware.RequireRole("tenant"), complaintHandler.ListMine)
	complaintRoutes.GET("", middleware.RequireAdmin(), complaintHandler.List)
	complaintRoutes.GET("/:id", middleware.RequireAdmin(), complaintHandler.Get)
	complaintRoutes.PUT("/:id", middleware.RequireAdmin(), complaintHandler.Update)

	dashboardRoutes := router.NewGroup("/dashboard")
	dashboardRoutes.GET("/admin", middleware.RequireAdmin(), dashboardHandler.Admin)
	dashboardRoutes.GET("/my", middleware.RequireRole("tenant"), dashboardHandler.Tenant)

	systemRoutes := router.NewGroup("/system")
	systemRoutes.GET("/info", systemHandler.Info)

	r.Register(authRoutes).
		Register(tenantRoutes).
		Register(billRoutes).
		Register(complaintRoutes).
		Register(dashboardRoutes).
		Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newTokenBlacklist connects to Redis when it is reachable and falls back to
// the in-memory blacklist otherwise. Logout still works either way; only
// multi-instance revocation needs Redis.
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err))
		_ = client.Close()
		return auth.NewInMemoryTokenBlacklist()
	}

	log.Info("Redis token blacklist enabled", zap.String("addr", cfg.Redis.Addr()))
	return auth.NewRedisTokenBlacklist(client)
}

// healthHandler reports liveness and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

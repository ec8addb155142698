package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskflow/task-system/internal/api/handler"
	"github.com/taskflow/task-system/internal/api/middleware"
	"github.com/taskflow/task-system/internal/core/ports"
	"github.com/taskflow/task-system/internal/core/service"
	mongodb "github.com/taskflow/task-system/internal/infrastructure/db/mongo"
	redisstore "github.com/taskflow/task-system/internal/infrastructure/db/redis"
	"github.com/taskflow/task-system/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered.
// The activity dispatcher is constructed by main so its lifecycle (worker
// startup and shutdown) stays with the process, not the router.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, activity ports.ActivityDispatcher) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("taskflow"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	idemStore := redisstore.NewIdempotencyStore(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, log)
	taskService := service.NewTaskService(taskRepo, idemStore, activity, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)

	authGuard := middleware.Auth(cfg.JWTSecret, userRepo)
	adminOnly := middleware.AdminOnly()

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/users", userHandler.List, authGuard, adminOnly)
	auth.PUT("/ban/:id", userHandler.Ban, authGuard, adminOnly)
	auth.PUT("/unban/:id", userHandler.Unban, authGuard, adminOnly)

	// --- Task routes ---
	tasks := e.Group("/tasks", authGuard)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.PUT("/:id/status", taskHandler.UpdateStatus)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/questionsapp/questions-api/docs" // swagger spec registration

	"github.com/questionsapp/questions-api/internal/api/handler"
	"github.com/questionsapp/questions-api/internal/api/middleware"
	"github.com/questionsapp/questions-api/internal/core/domain"
	"github.com/questionsapp/questions-api/internal/core/ports"
	"github.com/questionsapp/questions-api/internal/core/service"
	"github.com/questionsapp/questions-api/internal/infrastructure/config"
	mongostore "github.com/questionsapp/questions-api/internal/infrastructure/db/mongo"
	redisstore "github.com/questionsapp/questions-api/internal/infrastructure/db/redis"
	"github.com/questionsapp/questions-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	codec ports.TokenCodec,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("questions"))

	// --- Dependencies ---
	identityStore := mongostore.NewIdentityStore(db)
	limiter := redisstore.NewLoginLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginLockoutTTL)
	sessionService := service.NewSessionService(identityStore, codec, limiter, audit, log)
	authHandler := handler.NewAuthHandler(sessionService)

	questionRepo := mongostore.NewQuestionRepository(db)
	questionService := service.NewQuestionService(questionRepo, log)
	questionHandler := handler.NewQuestionHandler(questionService)

	requireAuth := middleware.RequireAuth(codec, log)
	optionalAuth := middleware.OptionalAuth(codec, log)
	requireAdmin := middleware.RequireRole(identityStore, domain.RoleAdmin, log)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- Questions routes ---
	e.GET("/questions", questionHandler.List, requireAuth)
	e.POST("/questions", questionHandler.Create, optionalAuth)
	e.GET("/questions/:id", questionHandler.Get, requireAuth)
	e.DELETE("/questions/:id", questionHandler.Delete, requireAuth, requireAdmin)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

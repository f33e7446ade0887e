package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tivit/users-api/internal/api/handler"
	"github.com/tivit/users-api/internal/api/middleware"
	"github.com/tivit/users-api/internal/core/domain"
	"github.com/tivit/users-api/internal/core/service"
	"github.com/tivit/users-api/internal/core/token"
	"github.com/tivit/users-api/internal/infrastructure/config"
	mongodb "github.com/tivit/users-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tivit/users-api/internal/infrastructure/db/redis"
	"github.com/tivit/users-api/internal/infrastructure/external"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("usersapi"))

	// --- Dependencies ---
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL())
	userRepo := mongodb.NewUserRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)
	authService := service.NewAuthService(userRepo, codec, throttle, log)
	authHandler := handler.NewAuthHandler(authService)

	extClient := external.NewClient(external.ClientConfig{
		BaseURL:    cfg.External.BaseURL,
		Username:   cfg.External.Username,
		Password:   cfg.External.Password,
		Timeout:    cfg.External.Timeout(),
		DefaultTTL: cfg.External.TokenTTL(),
	})
	tokenCache := external.NewTokenCache(extClient, log)
	gateway := external.NewGateway(extClient, tokenCache)
	gatewayHandler := handler.NewGatewayHandler(gateway, log)

	authMW := middleware.Auth(codec, log)

	// --- Routes ---
	e.POST("/token", authHandler.Login)
	e.GET("/user", gatewayHandler.User, authMW, middleware.RequireRole(domain.RoleUser))
	e.GET("/admin", gatewayHandler.Admin, authMW, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readyHandler := handler.NewReadinessHandler(db, rdb, extClient)

	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", readyHandler.Readiness)  // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

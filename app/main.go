package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"event-rental/internal/controllers"
	"event-rental/internal/repositories"
	"event-rental/internal/routes"
	"event-rental/migrations"
	"event-rental/pkg/api"
	"event-rental/pkg/config"
	"event-rental/pkg/database/postgresql"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/filestorage"
	applogger "event-rental/pkg/logger"
	"event-rental/pkg/metrics"
	"event-rental/pkg/middleware"
	"event-rental/pkg/service"
	"event-rental/pkg/validation"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appMetrics, err := metrics.NewMetrics()
	if err != nil {
		logger.Fatal("failed to create metrics", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	validator := validation.New()
	e.Validator = validator

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err, nil)
				_ = api.ErrorResponse(c, httpErr)
			}
			return err
		},
	}))
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics(appMetrics.HTTP))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Server.MigrateOnStart {
		if err := migrations.Up(ctx, dbConn, logger); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	health := map[string]controllers.Pinger{"postgres": dbConn}
	var cacheRepo repositories.CacheRepositoryInterface
	switch cfg.Cache.Driver {
	case "memory":
		cacheRepo = repositories.NewMemoryCacheRepository(time.Minute)
		logger.Info("using in-process cache")
	default:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			// principals are then read from the database on every request
			logger.Warn("redis is unreachable", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		cacheRepo = repositories.NewRedisCacheRepository(redisClient)
		health["redis"] = cacheRepo
	}

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BaseDir)
	if err != nil {
		logger.Fatal("failed to prepare upload directory", zap.Error(err))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)

	svc := routes.NewServices(dbConn, cacheRepo, jwtSvc, fileStorage, appMetrics, validator, cfg, logger)
	routes.InitRouter(e, svc, jwtSvc, appMetrics, health, cfg.Upload.BaseDir, logger)

	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

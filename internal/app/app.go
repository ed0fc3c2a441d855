package app

import (
	"context"
	"time"

	"github.com/VonnAirone/leave-management-system/internal/bootstrap"
	"github.com/VonnAirone/leave-management-system/internal/leavetype"
	"github.com/VonnAirone/leave-management-system/internal/middleware"
	"github.com/VonnAirone/leave-management-system/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config bootstrap.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Engine *gin.Engine
	Logger *zap.Logger
}

// BuildApp connects the backing stores, seeds reference data and wires every
// module onto a gin engine.
func BuildApp(logger *zap.Logger) (*App, error) {
	cfg := bootstrap.LoadConfig()
	gin.SetMode(cfg.GinMode)

	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, 5,
	)
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		// The API degrades to uncached reads without redis.
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := leavetype.NewRepository(db).EnsureSeeded(seedCtx); err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())

	if err := registerModules(engine, db, rdb, logger); err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Engine: engine,
		Logger: logger,
	}, nil
}

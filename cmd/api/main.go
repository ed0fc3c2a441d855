package main

import (
	"github.com/VonnAirone/leave-management-system/internal/app"
	"github.com/VonnAirone/leave-management-system/internal/bootstrap"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	application, err := app.BuildApp(logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	if err := bootstrap.RunServer(application.Engine, application.Config.HTTPPort, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

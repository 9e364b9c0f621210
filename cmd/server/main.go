package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/Terrainx/pkg/http"
	"github.com/lintang-b-s/Terrainx/pkg/http/usecases"
	"github.com/lintang-b-s/Terrainx/pkg/logger"
	"github.com/lintang-b-s/Terrainx/pkg/util"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", true, "apply a global request rate limit")
)

func main() {
	flag.Parse()

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}

	terrainService := usecases.NewTerrainService(logger)

	api := http.NewServer(logger)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx, logger, *useRateLimit, terrainService)

	signal := http.GracefulShutdown()

	logger.Info("Terrainx Analysis Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}

package main

import (
	"context"
	"errors"
	"flag"

	"github.com/joho/godotenv"
	"github.com/lintang-b-s/Carbonetx/pkg/http"
	"github.com/lintang-b-s/Carbonetx/pkg/http/usecases"
	"github.com/lintang-b-s/Carbonetx/pkg/logger"
	"github.com/lintang-b-s/Carbonetx/pkg/scenario"
	"github.com/lintang-b-s/Carbonetx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit  = flag.Bool("rate_limit", true, "limit api requests to RATE_LIMIT_RPS")
	solutionsKept  = flag.Int("solutions_kept", 256, "number of solutions kept in memory for GET /api/solutions/:id")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, using config file and environment only")
	}
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}

	plannerService := usecases.NewPlannerService(logger, scenario.DefaultsFromConfig(), viper.GetInt("NUM_WORKERS"),
		usecases.NewSolutionStore(*solutionsKept))

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api, err := http.NewServer(logger).Use(ctx, *useRateLimit, plannerService)
	if err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()
	logger.Info("Carbonetx Planner Server Stopped", zap.String("signal", signal.String()))
	cleanup()

	if err := api.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}

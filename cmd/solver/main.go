package main

import (
	"context"
	"errors"
	"flag"

	"github.com/lintang-b-s/Carbonetx/pkg/engine/heuristic"
	"github.com/lintang-b-s/Carbonetx/pkg/logger"
	"github.com/lintang-b-s/Carbonetx/pkg/scenario"
	"github.com/lintang-b-s/Carbonetx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	scenarioFile = flag.String("scenario", "./data/scenario.yaml", "scenario file (yaml or json)")
	outFile      = flag.String("out", "./data/solution.sol.bz2", "bzip2 compressed solution output file")
	numWorkers   = flag.Int("workers", 0, "number of goroutines probing sources per iteration, 0 uses NUM_WORKERS")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck // ignore

	if err := util.ReadConfig(); err != nil {
		panic(err)
	}

	sc, err := scenario.Load(*scenarioFile)
	if err != nil {
		panic(err)
	}
	dataset, err := sc.Build(scenario.DefaultsFromConfig(), logger)
	if err != nil {
		panic(err)
	}

	workers := *numWorkers
	if workers <= 0 {
		workers = viper.GetInt("NUM_WORKERS")
	}
	h, err := heuristic.NewHeuristic(dataset, logger, heuristic.Options{NumWorkers: workers})
	if err != nil {
		panic(err)
	}

	sol, err := h.Solve(context.Background())
	if err != nil && !errors.Is(err, heuristic.ErrInfeasible) {
		panic(err)
	}
	if err != nil {
		logger.Warn("capture target not met", zap.Error(err))
	}

	logger.Sugar().Infof("%s: status %s, captured %.4f of %.4f in %d iterations", sc.String(), sol.Status,
		util.RoundFloat(sol.AmountCaptured, 4), util.RoundFloat(sol.TargetCaptureAmount, 4), sol.Iterations)
	logger.Sugar().Infof("opened %d sources and %d sinks, %d pipelines over %.2f km", sol.NumOpenedSources,
		sol.NumOpenedSinks, len(sol.Pipelines), util.RoundFloat(sol.NetworkLength, 2))
	logger.Info("annual costs",
		zap.Float64("capture", util.RoundFloat(sol.Costs.Capture, 4)),
		zap.Float64("transport", util.RoundFloat(sol.Costs.Transport, 4)),
		zap.Float64("storage", util.RoundFloat(sol.Costs.Storage, 4)),
		zap.Float64("total", util.RoundFloat(sol.Costs.Total, 4)),
		zap.Float64("unit_total", util.RoundFloat(sol.Costs.UnitTotal, 4)))

	if err := scenario.WriteSolution(*outFile, sol); err != nil {
		panic(err)
	}
	logger.Sugar().Infof("solution written to %s", *outFile)
}

package usecases

import (
	"context"
	"errors"

	"github.com/lintang-b-s/Carbonetx/pkg/engine/heuristic"
	"github.com/lintang-b-s/Carbonetx/pkg/scenario"
	"go.uber.org/zap"
)

type PlannerService struct {
	log            *zap.Logger
	defaults       scenario.Defaults
	defaultWorkers int
	store          *SolutionStore
}

func NewPlannerService(log *zap.Logger, defaults scenario.Defaults, defaultWorkers int,
	store *SolutionStore) *PlannerService {
	return &PlannerService{
		log:            log,
		defaults:       defaults,
		defaultWorkers: defaultWorkers,
		store:          store,
	}
}

// Solve. builds the dataset from sc and runs the heuristic. solved and infeasible solutions are stored,
// cancelled runs are not.
func (ps *PlannerService) Solve(ctx context.Context, sc *scenario.Scenario, numWorkers int,
	onIteration func(heuristic.Iteration)) (string, *heuristic.Solution, error) {
	dataset, err := sc.Build(ps.defaults, ps.log)
	if err != nil {
		return "", nil, err
	}

	if numWorkers <= 0 {
		numWorkers = ps.defaultWorkers
	}
	h, err := heuristic.NewHeuristic(dataset, ps.log, heuristic.Options{
		NumWorkers:  numWorkers,
		OnIteration: onIteration,
	})
	if err != nil {
		return "", nil, err
	}

	sol, err := h.Solve(ctx)
	if err != nil && !errors.Is(err, heuristic.ErrInfeasible) {
		return "", nil, err
	}

	id := ps.store.Put(sol)
	ps.log.Info("solution stored", zap.String("id", id), zap.String("status", string(sol.Status)),
		zap.Float64("amount_captured", sol.AmountCaptured))
	return id, sol, err
}

func (ps *PlannerService) GetSolution(id string) (*heuristic.Solution, error) {
	return ps.store.Get(id)
}

package controllers

import (
	"context"

	"github.com/lintang-b-s/Carbonetx/pkg/engine/heuristic"
	"github.com/lintang-b-s/Carbonetx/pkg/scenario"
)

type PlannerService interface {
	// Solve. returns the id the solution is stored under, the solution is also returned for infeasible instances
	Solve(ctx context.Context, sc *scenario.Scenario, numWorkers int,
		onIteration func(heuristic.Iteration)) (string, *heuristic.Solution, error)
	GetSolution(id string) (*heuristic.Solution, error)
}

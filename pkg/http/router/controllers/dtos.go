package controllers

import (
	"github.com/lintang-b-s/Carbonetx/pkg/engine/heuristic"
	"github.com/lintang-b-s/Carbonetx/pkg/scenario"
)

type solveRequest struct {
	Scenario   *scenario.Scenario `json:"scenario" validate:"required"`
	NumWorkers int                `json:"num_workers" validate:"gte=0,lte=256"`
}

type solveResponse struct {
	ID       string              `json:"id,omitempty"`
	Solution *heuristic.Solution `json:"solution"`
}

func NewSolveResponse(id string, sol *heuristic.Solution) solveResponse {
	return solveResponse{
		ID:       id,
		Solution: sol,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

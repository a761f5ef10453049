package costfunction

import (
	da "github.com/lintang-b-s/Carbonetx/pkg/datastructure"
)

// ArcLoad is the installed size and hosted volume of one direction of a physical pipeline.
type ArcLoad struct {
	Size    int
	Hosting float64
}

func NewArcLoad(size int, hosting float64) ArcLoad {
	return ArcLoad{Size: size, Hosting: hosting}
}

func (l ArcLoad) IsHosting() bool {
	return da.Gt(l.Hosting, 0)
}

type CostFunction interface {
	// GetWeight. non-negative shortest path weight of pushing transferAmount through front
	GetWeight(table *PipelineCostTable, front, back ArcLoad, transferAmount float64) float64
}

/*
PlanTransfer. new loads of the two opposite arcs (front = u->v, back = v->u) of one physical pipeline after
pushing transferAmount from u to v, and the change of the pipeline annual cost.

the pipeline capacity is shared by both directions, so flow already going the other way is netted first:
  - back hosts more than transferAmount: back shrinks, front untouched
  - back hosts less than transferAmount: back is emptied, front carries the excess
  - back hosts exactly transferAmount: back is emptied
  - back hosts nothing: front grows

the cost is negative when netting lets a pipe shrink.
*/
func PlanTransfer(table *PipelineCostTable, front, back ArcLoad, transferAmount float64) (ArcLoad, ArcLoad, float64) {
	if back.IsHosting() {
		removed := table.ArcCost(back.Size, back.Hosting)

		switch {
		case da.Lt(transferAmount, back.Hosting):
			remaining := back.Hosting - transferAmount
			newBack := NewArcLoad(table.GetPipelineSize(remaining), remaining)
			return front, newBack, table.ArcCost(newBack.Size, newBack.Hosting) - removed

		case da.Gt(transferAmount, back.Hosting):
			excess := front.Hosting + transferAmount - back.Hosting
			newFront := NewArcLoad(table.GetPipelineSize(excess), excess)
			cost := table.ArcCost(newFront.Size, newFront.Hosting) - table.ArcCost(front.Size, front.Hosting) - removed
			return newFront, NewArcLoad(0, 0), cost

		default:
			return front, NewArcLoad(0, 0), -removed
		}
	}

	volume := front.Hosting + transferAmount
	newFront := NewArcLoad(table.GetPipelineSize(volume), volume)
	return newFront, back, table.ArcCost(newFront.Size, newFront.Hosting) - table.ArcCost(front.Size, front.Hosting)
}

// MarginalCostFunction. PlanTransfer cost clamped at 0, dijkstra can not handle negative weights.
type MarginalCostFunction struct {
}

func NewMarginalCostFunction() *MarginalCostFunction {
	return &MarginalCostFunction{}
}

func (mf *MarginalCostFunction) GetWeight(table *PipelineCostTable, front, back ArcLoad, transferAmount float64) float64 {
	_, _, cost := PlanTransfer(table, front, back, transferAmount)
	if cost < 0 {
		return 0
	}
	return cost
}

package costfunction

import (
	"github.com/lintang-b-s/Carbonetx/pkg"
	da "github.com/lintang-b-s/Carbonetx/pkg/datastructure"
)

/*
PipelineCostTable. size-indexed cost/capacity table of one candidate edge.

every discrete pipe size c has a linear annual cost curve cost_c(v) = alpha_c*v + beta_c, with alpha and beta
each split into a construction part and a right-of-way part. bigger sizes have a bigger fixed part (beta) and a
smaller per-ton part (alpha), so size c is the cheapest one until its curve crosses the curve of size c+1.
that crossing volume is the capacity breakpoint of size c. the biggest size never needs to carry more than
the capture target.

index 0 of every array is "no pipeline built": zero capacity, zero cost.
*/
type PipelineCostTable struct {
	capacities    []float64
	buildCost     []float64 // fixed annual cost of each size
	transportCost []float64 // annual cost per ton of CO2 of each size
}

func NewPipelineCostTable(linearComponents []da.LinearComponent, unitConstructionCost, unitRightOfWayCost,
	crf, targetCaptureAmount float64) *PipelineCostTable {
	numSizes := len(linearComponents)

	t := &PipelineCostTable{
		capacities:    make([]float64, numSizes+1),
		buildCost:     make([]float64, numSizes+1),
		transportCost: make([]float64, numSizes+1),
	}

	for c := 0; c < numSizes; c++ {
		maxCap := targetCaptureAmount
		if c < numSizes-1 {
			cur, next := linearComponents[c], linearComponents[c+1]
			if x, ok := da.LinearCostIntersection(cur.Alpha(), cur.Beta(), next.Alpha(), next.Beta()); ok {
				maxCap = x
			}
		}

		// keep breakpoints increasing and never above the target
		if maxCap < t.capacities[c] {
			maxCap = t.capacities[c]
		}
		if maxCap > targetCaptureAmount {
			maxCap = targetCaptureAmount
		}
		t.capacities[c+1] = maxCap
	}

	for c, lc := range linearComponents {
		t.buildCost[c+1] = (lc.ConBeta*unitConstructionCost + lc.RowBeta*unitRightOfWayCost) * crf
		t.transportCost[c+1] = (lc.ConAlpha*unitConstructionCost + lc.RowAlpha*unitRightOfWayCost) * crf /
			pkg.PIPELINE_UTILIZATION
	}

	return t
}

// GetPipelineSize. smallest size that can host volume, 0 for no volume.
// volumes above the biggest breakpoint get the biggest size.
func (t *PipelineCostTable) GetPipelineSize(volume float64) int {
	if da.Le(volume, 0) {
		return 0
	}
	for size := 1; size < len(t.capacities); size++ {
		if da.Le(volume, t.capacities[size]) {
			return size
		}
	}
	return len(t.capacities) - 1
}

// ArcCost. annual cost of an arc with the given size hosting volume
func (t *PipelineCostTable) ArcCost(size int, volume float64) float64 {
	return t.buildCost[size] + t.transportCost[size]*volume
}

func (t *PipelineCostTable) NumberOfSizes() int {
	return len(t.capacities) - 1
}

func (t *PipelineCostTable) GetCapacity(size int) float64 {
	return t.capacities[size]
}

func (t *PipelineCostTable) GetBuildCost(size int) float64 {
	return t.buildCost[size]
}

func (t *PipelineCostTable) GetTransportCost(size int) float64 {
	return t.transportCost[size]
}

func (t *PipelineCostTable) GetCapacities() []float64 {
	return append([]float64(nil), t.capacities...)
}

func (t *PipelineCostTable) GetBuildCosts() []float64 {
	return append([]float64(nil), t.buildCost...)
}

func (t *PipelineCostTable) GetTransportCosts() []float64 {
	return append([]float64(nil), t.transportCost...)
}

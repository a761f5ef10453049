package heuristic

import (
	"github.com/lintang-b-s/Carbonetx/pkg/costfunction"
	da "github.com/lintang-b-s/Carbonetx/pkg/datastructure"
	"github.com/lintang-b-s/Carbonetx/pkg/util"
)

// Arc is one direction of a candidate pipeline. both arcs of a physical edge share the same cost table.
type Arc struct {
	tail    da.Index
	head    da.Index
	reverse da.Index // arc in the opposite direction
	edge    int      // index of the candidate edge in the dataset
	table   *costfunction.PipelineCostTable
	load    costfunction.ArcLoad
}

func (a *Arc) GetTail() da.Index {
	return a.tail
}

func (a *Arc) GetHead() da.Index {
	return a.head
}

func (a *Arc) GetReverse() da.Index {
	return a.reverse
}

func (a *Arc) GetEdge() int {
	return a.edge
}

func (a *Arc) GetCostTable() *costfunction.PipelineCostTable {
	return a.table
}

func (a *Arc) GetCurrentSize() int {
	return a.load.Size
}

func (a *Arc) GetCurrentHostingAmount() float64 {
	return a.load.Hosting
}

// PipelineGraph. directed arcs of all candidate edges, arcs 2k and 2k+1 are the two directions of edge k.
type PipelineGraph struct {
	arena   *da.VertexArena
	arcs    []Arc
	outArcs [][]da.Index
}

func NewPipelineGraph(dataset *da.Dataset, arena *da.VertexArena) *PipelineGraph {
	edges := dataset.GetEdges()
	g := &PipelineGraph{
		arena:   arena,
		arcs:    make([]Arc, 0, 2*len(edges)),
		outArcs: make([][]da.Index, arena.NumberOfVertices()),
	}

	for k, e := range edges {
		table := costfunction.NewPipelineCostTable(dataset.GetLinearComponents(), e.GetConstructionCost(),
			e.GetRightOfWayCost(), dataset.GetCrf(), dataset.GetTargetCaptureAmount())

		u := arena.MustIndexOf(e.GetV1())
		v := arena.MustIndexOf(e.GetV2())

		forward := da.Index(len(g.arcs))
		backward := forward + 1
		g.arcs = append(g.arcs,
			Arc{tail: u, head: v, reverse: backward, edge: k, table: table},
			Arc{tail: v, head: u, reverse: forward, edge: k, table: table},
		)
		g.outArcs[u] = append(g.outArcs[u], forward)
		g.outArcs[v] = append(g.outArcs[v], backward)
	}
	return g
}

func (g *PipelineGraph) NumberOfVertices() int {
	return len(g.outArcs)
}

func (g *PipelineGraph) NumberOfArcs() int {
	return len(g.arcs)
}

func (g *PipelineGraph) GetArc(id da.Index) *Arc {
	return &g.arcs[id]
}

func (g *PipelineGraph) GetArena() *da.VertexArena {
	return g.arena
}

func (g *PipelineGraph) ForOutArcsOf(u da.Index, handle func(id da.Index, arc *Arc)) {
	for _, id := range g.outArcs[u] {
		handle(id, &g.arcs[id])
	}
}

// AssignWeights. writes the marginal cost of pushing transferAmount through every arc into weights.
// the graph is only read, so concurrent evaluations can each use their own weights slice.
func (g *PipelineGraph) AssignWeights(cf costfunction.CostFunction, transferAmount float64, weights []float64) {
	for id := range g.arcs {
		front := &g.arcs[id]
		back := &g.arcs[front.reverse]
		weights[id] = cf.GetWeight(front.table, front.load, back.load, transferAmount)
	}
}

// Route. pushes transferAmount along path, netting against opposite flow on every arc.
// the whole path is checked before any arc is changed.
func (g *PipelineGraph) Route(path []da.Index, transferAmount float64) error {
	for _, id := range path {
		if int(id) >= len(g.arcs) {
			return util.WrapErrorf(ErrInconsistentGraph, util.ErrInternalServerError,
				"path references unknown arc %d", id)
		}
		front := &g.arcs[id]
		if int(front.reverse) >= len(g.arcs) || g.arcs[front.reverse].reverse != id {
			return util.WrapErrorf(ErrInconsistentGraph, util.ErrInternalServerError,
				"arc %d has no opposite arc", id)
		}
	}

	for _, id := range path {
		front := &g.arcs[id]
		back := &g.arcs[front.reverse]
		front.load, back.load, _ = costfunction.PlanTransfer(front.table, front.load, back.load, transferAmount)
	}
	return nil
}

// TransportCost. annual build + transport cost of the currently installed network
func (g *PipelineGraph) TransportCost() float64 {
	total := 0.0
	for id := range g.arcs {
		a := &g.arcs[id]
		total += a.table.ArcCost(a.load.Size, a.load.Hosting)
	}
	return total
}

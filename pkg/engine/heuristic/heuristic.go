package heuristic

import (
	"context"
	"fmt"
	"math"

	"github.com/lintang-b-s/Carbonetx/pkg"
	"github.com/lintang-b-s/Carbonetx/pkg/concurrent"
	"github.com/lintang-b-s/Carbonetx/pkg/costfunction"
	da "github.com/lintang-b-s/Carbonetx/pkg/datastructure"
	"github.com/lintang-b-s/Carbonetx/pkg/util"
	"go.uber.org/zap"
)

type Options struct {
	// NumWorkers. goroutines evaluating source/sink pairs, <= 1 evaluates serially
	NumWorkers int
	// OnIteration is called on the solving goroutine after every committed pair
	OnIteration func(Iteration)
}

type sourceState struct {
	remaining float64
	captured  float64
	opened    bool
}

type sinkState struct {
	remaining float64
	stored    float64
	numWells  int
	opened    bool
}

type pairCost struct {
	src, snk int
	amount   float64
	unitCost float64 // per ton
	path     []da.Index
	feasible bool
}

/*
Heuristic. greedy incremental network design.

every iteration prices every source/sink pair: opening costs of not yet used endpoints, new wells, capture and
injection costs, and the cheapest path under arc weights equal to the marginal cost of adding the transfer
amount to each arc. the pair with the lowest cost per ton is committed and the arcs on its path are resized.
this repeats until the capture target is met or no pair can carry anything.
*/
type Heuristic struct {
	dataset      *da.Dataset
	logger       *zap.Logger
	arena        *da.VertexArena
	graph        *PipelineGraph
	costFunction costfunction.CostFunction
	options      Options

	sourceVertex []da.Index
	sinkVertex   []da.Index
	component    []int // strongly connected component of every vertex

	sources        []sourceState
	sinks          []sinkState
	amountCaptured float64
	iterations     int
	trace          []Iteration
}

func NewHeuristic(dataset *da.Dataset, logger *zap.Logger, options Options) (*Heuristic, error) {
	if err := dataset.Validate(); err != nil {
		return nil, err
	}

	arena, err := dataset.BuildVertexArena()
	if err != nil {
		return nil, err
	}

	h := &Heuristic{
		dataset:      dataset,
		logger:       logger,
		arena:        arena,
		costFunction: costfunction.NewMarginalCostFunction(),
		options:      options,
		sourceVertex: make([]da.Index, len(dataset.GetSources())),
		sinkVertex:   make([]da.Index, len(dataset.GetSinks())),
	}
	for i, src := range dataset.GetSources() {
		h.sourceVertex[i] = arena.MustIndexOf(src.GetCellNum())
	}
	for i, snk := range dataset.GetSinks() {
		h.sinkVertex[i] = arena.MustIndexOf(snk.GetCellNum())
	}
	return h, nil
}

func (h *Heuristic) setup() {
	h.sources = make([]sourceState, len(h.dataset.GetSources()))
	for i, src := range h.dataset.GetSources() {
		h.sources[i] = sourceState{remaining: src.GetProductionRate()}
	}

	h.sinks = make([]sinkState, len(h.dataset.GetSinks()))
	for i, snk := range h.dataset.GetSinks() {
		h.sinks[i] = sinkState{remaining: snk.GetAnnualCapacity(h.dataset.GetProjectLength())}
	}

	h.graph = NewPipelineGraph(h.dataset, h.arena)
	h.amountCaptured = 0
	h.iterations = 0
	h.trace = make([]Iteration, 0)

	h.logger.Sugar().Infof("Built pipeline graph with %d vertices and %d arcs", h.graph.NumberOfVertices(),
		h.graph.NumberOfArcs())

	h.component = h.graph.RunKosaraju()
	for i, src := range h.dataset.GetSources() {
		if !h.canReachAnySink(i) {
			h.logger.Warn("source is disconnected from every sink", zap.String("label", src.GetLabel()),
				zap.Int64("cell", src.GetCellNum()))
		}
	}
}

func (h *Heuristic) canReachAnySink(src int) bool {
	for snk := range h.sinkVertex {
		if h.component[h.sourceVertex[src]] == h.component[h.sinkVertex[snk]] {
			return true
		}
	}
	return false
}

// Solve. runs the greedy loop until the capture target is met. ctx is checked between iterations.
// an infeasible instance returns the partial solution together with an error wrapping ErrInfeasible.
func (h *Heuristic) Solve(ctx context.Context) (*Solution, error) {
	h.setup()
	target := h.dataset.GetTargetCaptureAmount()

	h.logger.Sugar().Infof("Solving for a capture target of %.4f with %d sources and %d sinks...", target,
		len(h.sources), len(h.sinks))

	for da.Lt(h.amountCaptured, target) {
		if util.StopConcurrentOperation(ctx) {
			return h.buildSolution(pkg.STATUS_ERROR), ctx.Err()
		}

		best, found := h.cheapestPair(target - h.amountCaptured)
		if !found {
			h.logger.Warn("no source/sink pair can carry more CO2",
				zap.Float64("amount_captured", h.amountCaptured), zap.Float64("target", target))
			return h.buildSolution(pkg.STATUS_INFEASIBLE),
				fmt.Errorf("%w: captured %.4f of %.4f", ErrInfeasible, h.amountCaptured, target)
		}

		if err := h.schedulePair(best); err != nil {
			return nil, err
		}
	}

	sol := h.buildSolution(pkg.STATUS_SOLVED)
	h.logger.Info("capture target met",
		zap.Int("iterations", h.iterations),
		zap.Float64("amount_captured", h.amountCaptured),
		zap.Float64("total_cost", sol.Costs.Total))
	return sol, nil
}

// cheapestPair. pair with the lowest cost per ton, the first one in source-major order wins ties.
func (h *Heuristic) cheapestPair(remainingTarget float64) (pairCost, bool) {
	var results [][]pairCost

	if h.options.NumWorkers <= 1 {
		results = make([][]pairCost, len(h.sources))
		dj := NewDijkstra(h.graph)
		weights := make([]float64, h.graph.NumberOfArcs())
		for src := range h.sources {
			results[src] = h.evaluateSource(src, remainingTarget, dj, weights)
		}
	} else {
		srcs := make([]int, len(h.sources))
		for i := range srcs {
			srcs[i] = i
		}
		// every source gets its own weights, the graph is not written until the winner is committed
		results = concurrent.RunAll(h.options.NumWorkers, srcs, func(src int) []pairCost {
			return h.evaluateSource(src, remainingTarget, NewDijkstra(h.graph),
				make([]float64, h.graph.NumberOfArcs()))
		})
	}

	var best pairCost
	found := false
	for _, costs := range results {
		for _, pc := range costs {
			if pc.feasible && (!found || pc.unitCost < best.unitCost) {
				best = pc
				found = true
			}
		}
	}
	return best, found
}

// evaluateSource. prices src against every sink. arc weights only depend on the transfer amount,
// so one search is shared by consecutive sinks with the same amount.
func (h *Heuristic) evaluateSource(src int, remainingTarget float64, dj *Dijkstra, weights []float64) []pairCost {
	costs := make([]pairCost, len(h.sinks))
	searched := false
	lastAmount := 0.0

	for snk := range h.sinks {
		costs[snk] = pairCost{src: src, snk: snk, unitCost: math.Inf(1)}

		amount := util.MinG(util.MinG(h.sources[src].remaining, h.sinks[snk].remaining), remainingTarget)
		if da.Le(amount, 0) {
			continue
		}
		if h.component[h.sourceVertex[src]] != h.component[h.sinkVertex[snk]] {
			continue
		}

		if !searched || amount != lastAmount {
			h.graph.AssignWeights(h.costFunction, amount, weights)
			dj.ShortestPathTree(h.sourceVertex[src], weights)
			searched = true
			lastAmount = amount
		}

		t := h.sinkVertex[snk]
		if !dj.IsReachable(t) {
			continue
		}

		cost := h.endpointCost(src, snk, amount) + dj.GetDistance(t)
		costs[snk] = pairCost{
			src:      src,
			snk:      snk,
			amount:   amount,
			unitCost: cost / amount,
			path:     dj.GetPath(t),
			feasible: true,
		}
	}
	return costs
}

// endpointCost. opening, well, capture and injection costs of moving amount from src to snk
func (h *Heuristic) endpointCost(src, snk int, amount float64) float64 {
	crf := h.dataset.GetCrf()
	source := h.dataset.GetSources()[src]
	sink := h.dataset.GetSinks()[snk]
	srcState := h.sources[src]
	snkState := h.sinks[snk]

	cost := 0.0
	if !srcState.opened {
		cost += source.GetOpeningCost(crf)
	}
	if !snkState.opened {
		cost += sink.GetOpeningCost(crf)
	}

	newWells := sink.NumWellsFor(snkState.stored + amount)
	if newWells > snkState.numWells {
		cost += sink.GetWellOpeningCost(crf) * float64(newWells-snkState.numWells)
	}

	cost += amount * (source.GetCaptureCost() + sink.GetInjectionCost())
	return cost
}

func (h *Heuristic) schedulePair(pc pairCost) error {
	if err := h.graph.Route(pc.path, pc.amount); err != nil {
		return err
	}

	srcState := &h.sources[pc.src]
	srcState.remaining -= pc.amount
	srcState.captured += pc.amount
	srcState.opened = true

	sink := h.dataset.GetSinks()[pc.snk]
	snkState := &h.sinks[pc.snk]
	snkState.remaining -= pc.amount
	snkState.stored += pc.amount
	snkState.opened = true
	// wells are never closed during a solve
	snkState.numWells = util.MaxG(snkState.numWells, sink.NumWellsFor(snkState.stored))

	h.amountCaptured += pc.amount
	h.iterations++

	cells := make([]int64, 0, len(pc.path)+1)
	cells = append(cells, h.arena.GetVertex(h.sourceVertex[pc.src]).GetCellNum())
	for _, arcId := range pc.path {
		cells = append(cells, h.arena.GetVertex(h.graph.GetArc(arcId).GetHead()).GetCellNum())
	}

	it := Iteration{
		Number:         h.iterations,
		Source:         pc.src,
		Sink:           pc.snk,
		Amount:         pc.amount,
		UnitCost:       pc.unitCost,
		AmountCaptured: h.amountCaptured,
		Path:           cells,
	}
	h.trace = append(h.trace, it)

	h.logger.Debug("scheduled pair",
		zap.Int("iteration", it.Number),
		zap.Int("source", pc.src),
		zap.Int("sink", pc.snk),
		zap.Float64("amount", pc.amount),
		zap.Float64("unit_cost", pc.unitCost))

	if h.options.OnIteration != nil {
		h.options.OnIteration(it)
	}
	return nil
}

func (h *Heuristic) GetGraph() *PipelineGraph {
	return h.graph
}

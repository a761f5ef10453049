package heuristic

import (
	"github.com/lintang-b-s/Carbonetx/pkg"
	da "github.com/lintang-b-s/Carbonetx/pkg/datastructure"
	"github.com/lintang-b-s/Carbonetx/pkg/geo"
	"github.com/lintang-b-s/Carbonetx/pkg/util"
)

type SourceAllocation struct {
	Label    string  `json:"label"`
	CellNum  int64   `json:"cell"`
	Opened   bool    `json:"opened"`
	Captured float64 `json:"captured"`
}

type SinkAllocation struct {
	Label    string  `json:"label"`
	CellNum  int64   `json:"cell"`
	Opened   bool    `json:"opened"`
	Stored   float64 `json:"stored"`
	NumWells int     `json:"num_wells"`
}

// PipelineFlow. installed pipeline of one candidate edge, oriented in flow direction.
type PipelineFlow struct {
	FromCell      int64   `json:"from_cell"`
	ToCell        int64   `json:"to_cell"`
	Size          int     `json:"size"`
	Flow          float64 `json:"flow"`
	Capacity      float64 `json:"capacity"`
	BuildCost     float64 `json:"build_cost"`
	TransportCost float64 `json:"transport_cost"`
	Length        float64 `json:"length_km"`
	Polyline      string  `json:"polyline,omitempty"`
}

// CostBreakdown. annual costs, unit costs are per ton captured.
type CostBreakdown struct {
	Capture       float64 `json:"capture"`
	Transport     float64 `json:"transport"`
	Storage       float64 `json:"storage"`
	Total         float64 `json:"total"`
	UnitCapture   float64 `json:"unit_capture"`
	UnitTransport float64 `json:"unit_transport"`
	UnitStorage   float64 `json:"unit_storage"`
	UnitTotal     float64 `json:"unit_total"`
}

// Iteration. one committed source/sink pair.
type Iteration struct {
	Number         int     `json:"number"`
	Source         int     `json:"source"`
	Sink           int     `json:"sink"`
	Amount         float64 `json:"amount"`
	UnitCost       float64 `json:"unit_cost"`
	AmountCaptured float64 `json:"amount_captured"`
	Path           []int64 `json:"path"` // cells from source to sink
}

type Solution struct {
	Status              pkg.SolutionStatus `json:"status"`
	TargetCaptureAmount float64            `json:"target_capture_amount"`
	AmountCaptured      float64            `json:"amount_captured"`
	Iterations          int                `json:"iterations"`
	NumOpenedSources    int                `json:"num_opened_sources"`
	NumOpenedSinks      int                `json:"num_opened_sinks"`
	NetworkLength       float64            `json:"network_length_km"`
	Costs               CostBreakdown      `json:"costs"`
	Sources             []SourceAllocation `json:"sources"`
	Sinks               []SinkAllocation   `json:"sinks"`
	Pipelines           []PipelineFlow     `json:"pipelines"`
	Trace               []Iteration        `json:"trace,omitempty"`
}

// buildSolution. reported costs come from the final network state, never from the clamped path weights.
func (h *Heuristic) buildSolution(status pkg.SolutionStatus) *Solution {
	crf := h.dataset.GetCrf()
	sol := &Solution{
		Status:              status,
		TargetCaptureAmount: h.dataset.GetTargetCaptureAmount(),
		AmountCaptured:      h.amountCaptured,
		Iterations:          h.iterations,
		Sources:             make([]SourceAllocation, len(h.sources)),
		Sinks:               make([]SinkAllocation, len(h.sinks)),
		Pipelines:           make([]PipelineFlow, 0),
		Trace:               h.trace,
	}

	captureCosts := make([]float64, 0, len(h.sources))
	for i, src := range h.dataset.GetSources() {
		st := h.sources[i]
		sol.Sources[i] = SourceAllocation{
			Label:    src.GetLabel(),
			CellNum:  src.GetCellNum(),
			Opened:   st.opened,
			Captured: st.captured,
		}
		if st.opened {
			sol.NumOpenedSources++
			captureCosts = append(captureCosts, src.GetOpeningCost(crf))
		}
		captureCosts = append(captureCosts, st.captured*src.GetCaptureCost())
	}

	storageCosts := make([]float64, 0, len(h.sinks))
	for i, snk := range h.dataset.GetSinks() {
		st := h.sinks[i]
		sol.Sinks[i] = SinkAllocation{
			Label:    snk.GetLabel(),
			CellNum:  snk.GetCellNum(),
			Opened:   st.opened,
			Stored:   st.stored,
			NumWells: st.numWells,
		}
		if st.opened {
			sol.NumOpenedSinks++
			storageCosts = append(storageCosts, snk.GetOpeningCost(crf))
		}
		storageCosts = append(storageCosts, st.stored*snk.GetInjectionCost(),
			float64(st.numWells)*snk.GetWellOpeningCost(crf))
	}

	arena := h.graph.GetArena()
	for id := 0; id < h.graph.NumberOfArcs(); id++ {
		arc := h.graph.GetArc(da.Index(id))
		if !arc.load.IsHosting() {
			continue
		}
		from := arena.GetVertex(arc.GetTail())
		to := arena.GetVertex(arc.GetHead())
		table := arc.GetCostTable()

		flow := PipelineFlow{
			FromCell:      from.GetCellNum(),
			ToCell:        to.GetCellNum(),
			Size:          arc.GetCurrentSize(),
			Flow:          arc.GetCurrentHostingAmount(),
			Capacity:      table.GetCapacity(arc.GetCurrentSize()),
			BuildCost:     table.GetBuildCost(arc.GetCurrentSize()),
			TransportCost: table.GetTransportCost(arc.GetCurrentSize()) * arc.GetCurrentHostingAmount(),
		}
		if from.HasCoordinates() && to.HasCoordinates() {
			coords := []geo.Coordinate{
				geo.NewCoordinate(from.GetLat(), from.GetLon()),
				geo.NewCoordinate(to.GetLat(), to.GetLon()),
			}
			flow.Length = geo.GreatCircleDistance(coords[0], coords[1])
			flow.Polyline = geo.PolylineFromCoords(coords)
			sol.NetworkLength += flow.Length
		}
		sol.Pipelines = append(sol.Pipelines, flow)
	}

	sol.Costs.Capture = util.SumG(captureCosts)
	sol.Costs.Transport = h.graph.TransportCost()
	sol.Costs.Storage = util.SumG(storageCosts)
	sol.Costs.Total = sol.Costs.Capture + sol.Costs.Transport + sol.Costs.Storage

	sol.Costs.UnitCapture = util.SafeDivide(sol.Costs.Capture, h.amountCaptured)
	sol.Costs.UnitTransport = util.SafeDivide(sol.Costs.Transport, h.amountCaptured)
	sol.Costs.UnitStorage = util.SafeDivide(sol.Costs.Storage, h.amountCaptured)
	sol.Costs.UnitTotal = util.SafeDivide(sol.Costs.Total, h.amountCaptured)
	return sol
}

package datastructure

import (
	"math"

	"github.com/lintang-b-s/Carbonetx/pkg/util"
)

// Source is a CO2 emitter.
type Source struct {
	label          string
	cellNum        int64
	lat, lon       float64
	productionRate float64 // max CO2 captured per year
	captureCost    float64 // per ton
	openingCost    float64 // capital cost, annualized with crf when charged
}

func NewSource(label string, cellNum int64, productionRate, captureCost, openingCost float64) *Source {
	return &Source{
		label:          label,
		cellNum:        cellNum,
		productionRate: productionRate,
		captureCost:    captureCost,
		openingCost:    openingCost,
	}
}

func (s *Source) SetCoordinates(lat, lon float64) {
	s.lat = lat
	s.lon = lon
}

func (s *Source) SetCellNum(cellNum int64) {
	s.cellNum = cellNum
}

func (s *Source) GetLabel() string {
	return s.label
}

func (s *Source) GetCellNum() int64 {
	return s.cellNum
}

func (s *Source) GetLat() float64 {
	return s.lat
}

func (s *Source) GetLon() float64 {
	return s.lon
}

func (s *Source) GetProductionRate() float64 {
	return s.productionRate
}

func (s *Source) GetCaptureCost() float64 {
	return s.captureCost
}

func (s *Source) GetOpeningCost(crf float64) float64 {
	return s.openingCost * crf
}

// Sink is a CO2 storage site.
type Sink struct {
	label           string
	cellNum         int64
	lat, lon        float64
	capacity        float64 // over the whole project length
	injectionCost   float64 // per ton
	openingCost     float64
	wellCapacity    float64 // max annual throughput of one well
	wellOpeningCost float64
}

func NewSink(label string, cellNum int64, capacity, injectionCost, openingCost, wellCapacity,
	wellOpeningCost float64) *Sink {
	return &Sink{
		label:           label,
		cellNum:         cellNum,
		capacity:        capacity,
		injectionCost:   injectionCost,
		openingCost:     openingCost,
		wellCapacity:    wellCapacity,
		wellOpeningCost: wellOpeningCost,
	}
}

func (s *Sink) SetCoordinates(lat, lon float64) {
	s.lat = lat
	s.lon = lon
}

func (s *Sink) SetCellNum(cellNum int64) {
	s.cellNum = cellNum
}

func (s *Sink) GetLabel() string {
	return s.label
}

func (s *Sink) GetCellNum() int64 {
	return s.cellNum
}

func (s *Sink) GetLat() float64 {
	return s.lat
}

func (s *Sink) GetLon() float64 {
	return s.lon
}

func (s *Sink) GetCapacity() float64 {
	return s.capacity
}

// GetAnnualCapacity. lifetime capacity spread over the project length
func (s *Sink) GetAnnualCapacity(projectLength float64) float64 {
	return s.capacity / projectLength
}

func (s *Sink) GetInjectionCost() float64 {
	return s.injectionCost
}

func (s *Sink) GetOpeningCost(crf float64) float64 {
	return s.openingCost * crf
}

func (s *Sink) GetWellCapacity() float64 {
	return s.wellCapacity
}

func (s *Sink) GetWellOpeningCost(crf float64) float64 {
	return s.wellOpeningCost * crf
}

// NumWellsFor. number of wells needed to inject throughput per year
func (s *Sink) NumWellsFor(throughput float64) int {
	if s.wellCapacity <= 0 || throughput <= EPS {
		return 0
	}
	return int(math.Ceil(throughput/s.wellCapacity - EPS))
}

// CandidateEdge is an undirected edge of the candidate pipeline graph.
type CandidateEdge struct {
	v1, v2           int64
	constructionCost float64
	rightOfWayCost   float64
}

func NewCandidateEdge(v1, v2 int64, constructionCost, rightOfWayCost float64) *CandidateEdge {
	return &CandidateEdge{
		v1:               v1,
		v2:               v2,
		constructionCost: constructionCost,
		rightOfWayCost:   rightOfWayCost,
	}
}

func (e *CandidateEdge) GetV1() int64 {
	return e.v1
}

func (e *CandidateEdge) GetV2() int64 {
	return e.v2
}

func (e *CandidateEdge) GetConstructionCost() float64 {
	return e.constructionCost
}

func (e *CandidateEdge) GetRightOfWayCost() float64 {
	return e.rightOfWayCost
}

// LinearComponent is the linear cost curve of one discrete pipe size, split into a
// construction part and a right-of-way part: cost(v) = alpha*v + beta.
type LinearComponent struct {
	ConAlpha float64
	ConBeta  float64
	RowAlpha float64
	RowBeta  float64
}

func NewLinearComponent(conAlpha, conBeta, rowAlpha, rowBeta float64) LinearComponent {
	return LinearComponent{ConAlpha: conAlpha, ConBeta: conBeta, RowAlpha: rowAlpha, RowBeta: rowBeta}
}

func (lc LinearComponent) Alpha() float64 {
	return lc.ConAlpha + lc.RowAlpha
}

func (lc LinearComponent) Beta() float64 {
	return lc.ConBeta + lc.RowBeta
}

// Dataset is everything the solver reads.
type Dataset struct {
	vertices         []Vertex
	sources          []*Source
	sinks            []*Sink
	edges            []*CandidateEdge
	linearComponents []LinearComponent

	crf                 float64
	projectLength       float64
	targetCaptureAmount float64
}

func NewDataset(vertices []Vertex, sources []*Source, sinks []*Sink, edges []*CandidateEdge,
	linearComponents []LinearComponent, crf, projectLength, targetCaptureAmount float64) *Dataset {
	return &Dataset{
		vertices:            vertices,
		sources:             sources,
		sinks:               sinks,
		edges:               edges,
		linearComponents:    linearComponents,
		crf:                 crf,
		projectLength:       projectLength,
		targetCaptureAmount: targetCaptureAmount,
	}
}

func (d *Dataset) GetVertices() []Vertex {
	return d.vertices
}

func (d *Dataset) GetSources() []*Source {
	return d.sources
}

func (d *Dataset) GetSinks() []*Sink {
	return d.sinks
}

func (d *Dataset) GetEdges() []*CandidateEdge {
	return d.edges
}

func (d *Dataset) GetLinearComponents() []LinearComponent {
	return d.linearComponents
}

func (d *Dataset) GetCrf() float64 {
	return d.crf
}

func (d *Dataset) GetProjectLength() float64 {
	return d.projectLength
}

func (d *Dataset) GetTargetCaptureAmount() float64 {
	return d.targetCaptureAmount
}

func (d *Dataset) SetCrf(crf float64) {
	d.crf = crf
}

func (d *Dataset) SetProjectLength(projectLength float64) {
	d.projectLength = projectLength
}

func (d *Dataset) SetTargetCaptureAmount(target float64) {
	d.targetCaptureAmount = target
}

// BuildVertexArena indexes the declared vertices, then any cell that only appears as an
// edge endpoint or a source/sink location.
func (d *Dataset) BuildVertexArena() (*VertexArena, error) {
	arena, err := NewVertexArena(d.vertices)
	if err != nil {
		return nil, err
	}
	for _, e := range d.edges {
		arena.AddCell(e.v1)
		arena.AddCell(e.v2)
	}
	for _, src := range d.sources {
		arena.AddCell(src.cellNum)
	}
	for _, snk := range d.sinks {
		arena.AddCell(snk.cellNum)
	}
	return arena, nil
}

func (d *Dataset) Validate() error {
	if d.crf < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "crf must not be negative, got %f", d.crf)
	}
	if d.projectLength <= 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "project length must be positive, got %f", d.projectLength)
	}
	if d.targetCaptureAmount < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "target capture amount must not be negative, got %f",
			d.targetCaptureAmount)
	}
	if len(d.linearComponents) == 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "pipeline size table is empty")
	}

	for i, src := range d.sources {
		if err := src.validate(); err != nil {
			return util.WrapErrorf(err, util.ErrBadParamInput, "source %d (%s)", i, src.label)
		}
	}
	for i, snk := range d.sinks {
		if err := snk.validate(); err != nil {
			return util.WrapErrorf(err, util.ErrBadParamInput, "sink %d (%s)", i, snk.label)
		}
	}
	for i, e := range d.edges {
		if e.v1 == e.v2 {
			return util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d is a self loop on cell %d", i, e.v1)
		}
		if e.constructionCost < 0 || e.rightOfWayCost < 0 {
			return util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d (%d-%d) has negative unit costs", i, e.v1, e.v2)
		}
	}
	return nil
}

func (s *Source) validate() error {
	if s.productionRate < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "negative production rate %f", s.productionRate)
	}
	if s.captureCost < 0 || s.openingCost < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "negative costs")
	}
	return nil
}

func (s *Sink) validate() error {
	if s.capacity < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "negative capacity %f", s.capacity)
	}
	if s.wellCapacity < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "negative well capacity %f", s.wellCapacity)
	}
	if s.injectionCost < 0 || s.openingCost < 0 || s.wellOpeningCost < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "negative costs")
	}
	return nil
}

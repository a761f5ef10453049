package datastructure

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/Carbonetx/pkg/util"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_ARC_ID    Index = math.MaxUint32
)

// Vertex is one cell of the candidate graph. coordinates are optional and only used for
// snapping and pipeline lengths.
type Vertex struct {
	cellNum  int64
	lat      float64
	lon      float64
	hasCoord bool
}

func NewVertex(cellNum int64) Vertex {
	return Vertex{cellNum: cellNum}
}

func NewVertexWithCoordinates(cellNum int64, lat, lon float64) Vertex {
	return Vertex{cellNum: cellNum, lat: lat, lon: lon, hasCoord: true}
}

func (v Vertex) GetCellNum() int64 {
	return v.cellNum
}

func (v Vertex) GetLat() float64 {
	return v.lat
}

func (v Vertex) GetLon() float64 {
	return v.lon
}

func (v Vertex) HasCoordinates() bool {
	return v.hasCoord
}

// VertexArena assigns dense indices 0..N-1 to the cells of the candidate graph once,
// and keeps the lookup from external cell numbers to arena indices.
type VertexArena struct {
	vertices    []Vertex
	cellToIndex map[int64]Index
}

func NewVertexArena(vertices []Vertex) (*VertexArena, error) {
	arena := &VertexArena{
		vertices:    make([]Vertex, 0, len(vertices)),
		cellToIndex: make(map[int64]Index, len(vertices)),
	}
	for _, v := range vertices {
		if _, exists := arena.cellToIndex[v.cellNum]; exists {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "duplicate vertex cell %d", v.cellNum)
		}
		arena.add(v)
	}
	return arena, nil
}

func (a *VertexArena) add(v Vertex) Index {
	id := Index(len(a.vertices))
	a.vertices = append(a.vertices, v)
	a.cellToIndex[v.cellNum] = id
	return id
}

// AddCell adds a cell without coordinates if it is not known yet.
func (a *VertexArena) AddCell(cellNum int64) Index {
	if id, ok := a.cellToIndex[cellNum]; ok {
		return id
	}
	return a.add(NewVertex(cellNum))
}

func (a *VertexArena) IndexOf(cellNum int64) (Index, bool) {
	id, ok := a.cellToIndex[cellNum]
	return id, ok
}

func (a *VertexArena) MustIndexOf(cellNum int64) Index {
	id, ok := a.cellToIndex[cellNum]
	util.AssertPanic(ok, fmt.Sprintf("cell %d is not part of the candidate graph", cellNum))
	return id
}

func (a *VertexArena) GetVertex(id Index) Vertex {
	return a.vertices[id]
}

func (a *VertexArena) GetVertices() []Vertex {
	return a.vertices
}

func (a *VertexArena) NumberOfVertices() int {
	return len(a.vertices)
}

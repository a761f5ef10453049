package heuristic

import (
	"math"
	"testing"

	da "github.com/lintang-b-s/Carbonetx/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPathTree(t *testing.T) {
	dataset := da.NewDataset(
		nil, nil,
		[]*da.Sink{da.NewSink("isolated", 4, 10, 0, 0, 0, 0)},
		[]*da.CandidateEdge{
			da.NewCandidateEdge(1, 2, 1, 0),
			da.NewCandidateEdge(2, 3, 1, 0),
		},
		singleSize(),
		0.1, 30, 10,
	)
	arena, err := dataset.BuildVertexArena()
	require.NoError(t, err)
	g := NewPipelineGraph(dataset, arena)

	testCases := []struct {
		name     string
		weights  []float64
		target   int64
		wantDist float64
		wantPath []da.Index
	}{
		{name: "small weights", weights: []float64{1, 1, 2, 2}, target: 3, wantDist: 3,
			wantPath: []da.Index{0, 2}},
		{name: "huge weights are still arcs", weights: []float64{1e16, 1e16, 2e16, 2e16}, target: 3,
			wantDist: 3e16, wantPath: []da.Index{0, 2}},
		{name: "unreachable", weights: []float64{1, 1, 1, 1}, target: 4, wantDist: math.Inf(1)},
	}

	dj := NewDijkstra(g)
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			dj.ShortestPathTree(arena.MustIndexOf(1), tt.weights)

			target := arena.MustIndexOf(tt.target)
			assert.Equal(t, tt.wantDist, dj.GetDistance(target))
			assert.Equal(t, tt.wantPath != nil, dj.IsReachable(target))
			assert.Equal(t, tt.wantPath, dj.GetPath(target))
		})
	}
}

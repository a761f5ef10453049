package heuristic

import (
	"testing"

	da "github.com/lintang-b-s/Carbonetx/pkg/datastructure"
	"github.com/lintang-b-s/Carbonetx/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipelineGraph(t *testing.T) *PipelineGraph {
	t.Helper()
	dataset := da.NewDataset(
		nil, nil, nil,
		[]*da.CandidateEdge{
			da.NewCandidateEdge(1, 2, 1, 0),
			da.NewCandidateEdge(2, 3, 1, 0),
		},
		singleSize(),
		0.1, 30, 10,
	)
	arena, err := dataset.BuildVertexArena()
	require.NoError(t, err)
	return NewPipelineGraph(dataset, arena)
}

func TestPipelineGraphArcs(t *testing.T) {
	g := newTestPipelineGraph(t)

	assert.Equal(t, 3, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfArcs())
	for id := 0; id < g.NumberOfArcs(); id++ {
		arc := g.GetArc(da.Index(id))
		back := g.GetArc(arc.GetReverse())
		assert.Equal(t, arc.GetTail(), back.GetHead())
		assert.Equal(t, arc.GetHead(), back.GetTail())
		assert.Same(t, arc.GetCostTable(), back.GetCostTable())
		assert.Equal(t, id/2, arc.GetEdge())
	}
}

func TestRoute(t *testing.T) {
	testCases := []struct {
		name        string
		path        []da.Index
		wantErr     bool
		wantHosting []float64
	}{
		{name: "two arcs", path: []da.Index{0, 2}, wantHosting: []float64{5, 0, 5, 0}},
		{name: "unknown arc leaves the graph untouched", path: []da.Index{0, 99}, wantErr: true,
			wantHosting: []float64{0, 0, 0, 0}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestPipelineGraph(t)

			err := g.Route(tt.path, 5)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInconsistentGraph)
				assert.ErrorIs(t, err, util.ErrInternalServerError)
				assert.Zero(t, g.TransportCost())
			} else {
				require.NoError(t, err)
				assert.Greater(t, g.TransportCost(), 0.0)
			}

			for id, want := range tt.wantHosting {
				assert.InDelta(t, want, g.GetArc(da.Index(id)).GetCurrentHostingAmount(), da.EPS)
			}
		})
	}
}

package datastructure

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/Carbonetx/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDataset() *Dataset {
	return NewDataset(
		[]Vertex{NewVertexWithCoordinates(100, -7.7, 110.3)},
		[]*Source{NewSource("plant", 100, 10, 5, 1)},
		[]*Sink{NewSink("aquifer", 200, 300, 2, 1, 10, 1)},
		[]*CandidateEdge{NewCandidateEdge(100, 200, 1, 1)},
		[]LinearComponent{NewLinearComponent(1, 1, 0, 0)},
		0.1, 30, 10,
	)
}

func TestDatasetValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(d *Dataset)
		wantErr bool
	}{
		{name: "valid", mutate: func(d *Dataset) {}},
		{name: "zero project length", mutate: func(d *Dataset) { d.projectLength = 0 }, wantErr: true},
		{name: "negative target", mutate: func(d *Dataset) { d.targetCaptureAmount = -1 }, wantErr: true},
		{name: "empty size table", mutate: func(d *Dataset) { d.linearComponents = nil }, wantErr: true},
		{name: "self loop", mutate: func(d *Dataset) { d.edges[0].v2 = d.edges[0].v1 }, wantErr: true},
		{name: "negative production", mutate: func(d *Dataset) { d.sources[0].productionRate = -3 }, wantErr: true},
		{name: "negative well capacity", mutate: func(d *Dataset) { d.sinks[0].wellCapacity = -3 }, wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			d := validDataset()
			tt.mutate(d)
			err := d.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, util.ErrBadParamInput))
		})
	}
}

func TestBuildVertexArena(t *testing.T) {
	d := validDataset()
	arena, err := d.BuildVertexArena()
	require.NoError(t, err)

	assert.Equal(t, 2, arena.NumberOfVertices())

	id, ok := arena.IndexOf(100)
	require.True(t, ok)
	assert.Equal(t, Index(0), id)
	assert.True(t, arena.GetVertex(id).HasCoordinates())

	id, ok = arena.IndexOf(200)
	require.True(t, ok)
	assert.Equal(t, Index(1), id)
	assert.False(t, arena.GetVertex(id).HasCoordinates())

	_, ok = arena.IndexOf(300)
	assert.False(t, ok)

	_, err = NewVertexArena([]Vertex{NewVertex(1), NewVertex(1)})
	assert.Error(t, err)
}

func TestSinkNumWells(t *testing.T) {
	snk := NewSink("s", 1, 100, 0, 0, 10, 5)
	assert.Equal(t, 0, snk.NumWellsFor(0))
	assert.Equal(t, 1, snk.NumWellsFor(10))
	assert.Equal(t, 2, snk.NumWellsFor(10.5))
	assert.InDelta(t, 0.5, snk.GetWellOpeningCost(0.1), EPS)
	assert.InDelta(t, 100.0/30.0, snk.GetAnnualCapacity(30), EPS)

	noWells := NewSink("s", 1, 100, 0, 0, 0, 5)
	assert.Equal(t, 0, noWells.NumWellsFor(50))
}

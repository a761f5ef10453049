package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	testCases := []struct {
		name  string
		d     int
		ranks []float64
	}{
		{name: "binary heap", d: 2, ranks: []float64{5, 3, 8, 1, 9, 2, 7}},
		{name: "four-ary heap", d: 4, ranks: []float64{10, 4, 4, 0.5, 6, 12, 3, 3.5, 11}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := NewdAryHeap[Index](tt.d)
			for i, r := range tt.ranks {
				h.Insert(NewPriorityQueueNode(r, Index(i)))
			}

			prev := -1.0
			for !h.IsEmpty() {
				node, err := h.ExtractMin()
				require.NoError(t, err)
				assert.GreaterOrEqual(t, node.GetRank(), prev)
				prev = node.GetRank()
			}
		})
	}
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewFourAryHeap[Index]()
	nodes := make([]*PriorityQueueNode[Index], 0)
	for i, r := range []float64{10, 20, 30, 40} {
		n := NewPriorityQueueNode(r, Index(i))
		nodes = append(nodes, n)
		h.Insert(n)
	}

	require.NoError(t, h.DecreaseKey(nodes[3], 1))
	assert.Error(t, h.DecreaseKey(nodes[2], 100))

	minNode, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, Index(3), minNode.GetItem())
	assert.Equal(t, -1, minNode.GetPos())

	_, err = NewBinaryHeap[Index]().ExtractMin()
	assert.Error(t, err)
}

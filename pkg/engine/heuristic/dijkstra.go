package heuristic

import (
	"math"

	da "github.com/lintang-b-s/Carbonetx/pkg/datastructure"
	"github.com/lintang-b-s/Carbonetx/pkg/util"
)

// Dijkstra. single-source shortest paths over the pipeline arcs. arc weights are passed per search,
// so one Dijkstra must not be shared between goroutines but the graph can be.
type Dijkstra struct {
	graph *PipelineGraph

	dist      []float64
	parentArc []da.Index
	heapNodes []*da.PriorityQueueNode[da.Index]

	pq *da.MinHeap[da.Index]

	source da.Index
}

func NewDijkstra(graph *PipelineGraph) *Dijkstra {
	return &Dijkstra{
		graph:  graph,
		pq:     da.NewFourAryHeap[da.Index](),
		source: da.INVALID_VERTEX_ID,
	}
}

func (d *Dijkstra) Preallocate() {
	n := d.graph.NumberOfVertices()
	if len(d.dist) != n {
		d.dist = make([]float64, n)
		d.parentArc = make([]da.Index, n)
		d.heapNodes = make([]*da.PriorityQueueNode[da.Index], n)
	}
	for v := 0; v < n; v++ {
		d.dist[v] = math.Inf(1)
		d.parentArc[v] = da.INVALID_ARC_ID
		d.heapNodes[v] = nil
	}
	d.pq.Preallocate(n)
}

// ShortestPathTree. settles every vertex reachable from s using weights[arcId] as arc weights.
func (d *Dijkstra) ShortestPathTree(s da.Index, weights []float64) {
	d.Preallocate()
	d.source = s

	d.dist[s] = 0
	d.heapNodes[s] = da.NewPriorityQueueNode(0, s)
	d.pq.Insert(d.heapNodes[s])

	for !d.pq.IsEmpty() {
		node, _ := d.pq.ExtractMin()
		u := node.GetItem()

		d.graph.ForOutArcsOf(u, func(arcId da.Index, arc *Arc) {
			v := arc.GetHead()
			newDist := d.dist[u] + weights[arcId]

			// first discovered path wins ties
			if !da.Lt(newDist, d.dist[v]) {
				return
			}

			d.dist[v] = newDist
			d.parentArc[v] = arcId

			if d.heapNodes[v] != nil && d.heapNodes[v].GetPos() >= 0 {
				_ = d.pq.DecreaseKey(d.heapNodes[v], newDist)
			} else {
				d.heapNodes[v] = da.NewPriorityQueueNode(newDist, v)
				d.pq.Insert(d.heapNodes[v])
			}
		})
	}
}

func (d *Dijkstra) GetDistance(t da.Index) float64 {
	return d.dist[t]
}

func (d *Dijkstra) IsReachable(t da.Index) bool {
	return !math.IsInf(d.dist[t], 1)
}

// GetPath. arcs of the shortest path from the last search source to t, in traversal order.
func (d *Dijkstra) GetPath(t da.Index) []da.Index {
	path := make([]da.Index, 0)
	for v := t; v != d.source; {
		arcId := d.parentArc[v]
		if arcId == da.INVALID_ARC_ID {
			return nil
		}
		path = append(path, arcId)
		v = d.graph.GetArc(arcId).GetTail()
	}
	return util.ReverseG(path)
}

package heuristic

import (
	"math"

	da "github.com/lintang-b-s/Carbonetx/pkg/datastructure"
	"github.com/lintang-b-s/Carbonetx/pkg/util"
)

// RunKosaraju. strongly connected components of the pipeline graph, returns the component id of every vertex.
// component ids follow the smallest vertex index of each component, so they are stable across runs.
func (g *PipelineGraph) RunKosaraju() []int {
	n := g.NumberOfVertices()

	inArcs := make([][]da.Index, n)
	for id := range g.arcs {
		arc := &g.arcs[id]
		inArcs[arc.head] = append(inArcs[arc.head], da.Index(id))
	}

	order := make([]da.Index, 0, n)
	visited := make([]bool, n)
	for v := 0; v < n; v++ {
		if !visited[v] {
			g.dfs(da.Index(v), &order, visited, nil)
		}
	}

	order = util.ReverseG[da.Index](order)

	// reset visited
	visited = make([]bool, n)
	roots := make([]da.Index, n)
	for _, v := range order {
		if visited[v] {
			continue
		}
		component := make([]da.Index, 0, 10)
		g.dfs(v, &component, visited, inArcs)

		root := da.Index(math.MaxUint32)
		for _, u := range component {
			root = util.MinG(root, u)
		}
		for _, u := range component {
			roots[u] = root
		}
	}

	sccs := make([]int, n)
	for v := range sccs {
		sccs[v] = int(roots[v])
	}
	return sccs
}

// dfs. follows out arcs, or the tails of inArcs when traversing the transposed graph
func (g *PipelineGraph) dfs(v da.Index, output *[]da.Index, visited []bool, inArcs [][]da.Index) {
	visited[v] = true

	if inArcs == nil {
		g.ForOutArcsOf(v, func(_ da.Index, arc *Arc) {
			if !visited[arc.head] {
				g.dfs(arc.head, output, visited, inArcs)
			}
		})
	} else {
		for _, id := range inArcs[v] {
			tail := g.arcs[id].tail
			if !visited[tail] {
				g.dfs(tail, output, visited, inArcs)
			}
		}
	}

	*output = append(*output, v)
}

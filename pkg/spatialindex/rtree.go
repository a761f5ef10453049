package spatialindex

import (
	"github.com/lintang-b-s/Carbonetx/pkg/datastructure"
	"github.com/lintang-b-s/Carbonetx/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree. point index over the candidate network vertices, used to snap sources and sinks that are
// given by coordinates onto a cell.
type Rtree struct {
	tr       *rtree.RTreeG[int]
	vertices []datastructure.Vertex
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[int]
	return &Rtree{
		tr: &tr,
	}
}

// Build. indexes every vertex that has coordinates, vertices without coordinates can not be snapped to
func (rt *Rtree) Build(vertices []datastructure.Vertex, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("vertices", len(vertices)))
	rt.vertices = vertices

	indexed := 0
	for i, v := range vertices {
		if !v.HasCoordinates() {
			continue
		}
		p := [2]float64{v.GetLon(), v.GetLat()}
		rt.tr.Insert(p, p, i)
		indexed++
	}

	log.Info("R-tree spatial index built.", zap.Int("indexed", indexed))
}

// SearchWithinRadius search for all vertices within the bounding box of radius (in km) around (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Vertex {
	lower, upper := geo.BoundingBox(qLat, qLon, radius)

	results := make([]datastructure.Vertex, 0, 10)
	rt.tr.Search([2]float64{lower.Lon, lower.Lat}, [2]float64{upper.Lon, upper.Lat},
		func(min, max [2]float64, i int) bool {
			results = append(results, rt.vertices[i])
			return true
		})
	return results
}

// NearestVertex. closest vertex within radius (in km), ties go to the vertex declared first
func (rt *Rtree) NearestVertex(qLat, qLon, radius float64) (datastructure.Vertex, float64, bool) {
	lower, upper := geo.BoundingBox(qLat, qLon, radius)
	q := geo.NewCoordinate(qLat, qLon)

	best := -1
	bestDist := 0.0
	rt.tr.Search([2]float64{lower.Lon, lower.Lat}, [2]float64{upper.Lon, upper.Lat},
		func(min, max [2]float64, i int) bool {
			v := rt.vertices[i]
			dist := geo.GreatCircleDistance(q, geo.NewCoordinate(v.GetLat(), v.GetLon()))
			if dist > radius {
				return true
			}
			if best == -1 || dist < bestDist || (dist == bestDist && i < best) {
				best = i
				bestDist = dist
			}
			return true
		})

	if best == -1 {
		return datastructure.Vertex{}, 0, false
	}
	return rt.vertices[best], bestDist, true
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

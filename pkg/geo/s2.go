package geo

import (
	"github.com/golang/geo/s2"
)

func toLatLng(c Coordinate) s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lon)
}

// GreatCircleDistance. distance between a and b on the sphere, in km
func GreatCircleDistance(a, b Coordinate) float64 {
	return toLatLng(a).Distance(toLatLng(b)).Radians() * earthRadiusKM
}

// PathLength. length of the polyline through coords, in km
func PathLength(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	points := make([]s2.Point, len(coords))
	for i, c := range coords {
		points[i] = s2.PointFromLatLng(toLatLng(c))
	}
	pl := s2.Polyline(points)
	return pl.Length().Radians() * earthRadiusKM
}

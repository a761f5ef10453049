package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. encoded polyline (precision 5) of coords
func PolylineFromCoords(coords []Coordinate) string {
	s := make([][]float64, len(coords))
	for i, c := range coords {
		s[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(s))
}

func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	s, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	coords := make([]Coordinate, len(s))
	for i, c := range s {
		coords[i] = NewCoordinate(c[0], c[1])
	}
	return coords, nil
}

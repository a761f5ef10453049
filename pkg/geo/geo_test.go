package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreatCircleDistance(t *testing.T) {
	testCases := []struct {
		name string
		a, b Coordinate
	}{
		{name: "yogyakarta to solo", a: NewCoordinate(-7.7956, 110.3695), b: NewCoordinate(-7.5755, 110.8243)},
		{name: "same point", a: NewCoordinate(-6.2, 106.8), b: NewCoordinate(-6.2, 106.8)},
		{name: "across the equator", a: NewCoordinate(1.0, 100.0), b: NewCoordinate(-1.0, 101.0)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			want := CalculateHaversineDistance(tt.a.Lat, tt.a.Lon, tt.b.Lat, tt.b.Lon)
			assert.InDelta(t, want, GreatCircleDistance(tt.a, tt.b), 1e-6)
		})
	}
}

func TestPathLength(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(-7.0, 110.0),
		NewCoordinate(-7.1, 110.1),
		NewCoordinate(-7.2, 110.3),
	}
	want := GreatCircleDistance(coords[0], coords[1]) + GreatCircleDistance(coords[1], coords[2])
	assert.InDelta(t, want, PathLength(coords), 1e-6)
	assert.Equal(t, 0.0, PathLength(coords[:1]))
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(38.5, -120.2),
		NewCoordinate(40.7, -120.95),
		NewCoordinate(43.252, -126.453),
	}

	encoded := PolylineFromCoords(coords)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(coords))
	for i := range coords {
		assert.InDelta(t, coords[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, coords[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestBoundingBox(t *testing.T) {
	lower, upper := BoundingBox(-7.7, 110.3, 5)
	assert.Less(t, lower.Lat, -7.7)
	assert.Less(t, lower.Lon, 110.3)
	assert.Greater(t, upper.Lat, -7.7)
	assert.Greater(t, upper.Lon, 110.3)
	assert.InDelta(t, 5.0, CalculateHaversineDistance(-7.7, 110.3, upper.Lat, upper.Lon), 1e-6)
}

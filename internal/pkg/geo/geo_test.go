package geo

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{"same point", 40.7128, -74.0060, 40.7128, -74.0060, 0, 0.001},
		// ~111km per degree of latitude at the equator
		{"one degree latitude", 0, 0, 1, 0, 111195, 200},
		// Empire State Building to Grand Central, roughly 1.1km
		{"midtown manhattan", 40.7484, -73.9857, 40.7527, -73.9772, 860, 50},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := HaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
			if math.Abs(got-c.want) > c.tolerance {
				t.Errorf("HaversineDistance() = %.1f, want %.1f ± %.1f", got, c.want, c.tolerance)
			}
		})
	}
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	d1 := HaversineDistance(37.7749, -122.4194, 34.0522, -118.2437)
	d2 := HaversineDistance(34.0522, -118.2437, 37.7749, -122.4194)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}

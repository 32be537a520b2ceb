package geo

import (
	"math"
	"route-optimizer-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	nyc := &domain.Coordinates{Lat: 40.7128, Lon: -74.0060}
	london := &domain.Coordinates{Lat: 51.5074, Lon: -0.1278}

	d := Haversine(nyc, london)
	assert.InDelta(t, 5570, d, 15)
	assert.InDelta(t, d, Haversine(london, nyc), 1e-9)

	assert.Equal(t, 0.0, Haversine(nyc, nyc))
}

func TestHaversine_NilIsInfinite(t *testing.T) {
	p := &domain.Coordinates{Lat: 1, Lon: 1}

	assert.True(t, math.IsInf(Haversine(nil, p), 1))
	assert.True(t, math.IsInf(Haversine(p, nil), 1))
	assert.True(t, math.IsInf(Haversine(nil, nil), 1))
}

func TestHaversine_Antipodal(t *testing.T) {
	a := &domain.Coordinates{Lat: 0, Lon: 0}
	b := &domain.Coordinates{Lat: 0, Lon: 180}

	assert.InDelta(t, math.Pi*EarthRadiusKm, Haversine(a, b), 1e-6)
}

func TestJitter_AroundStaysInBounds(t *testing.T) {
	j := NewJitter(42)

	for i := 0; i < 1000; i++ {
		c := j.Around(domain.Depot, 0.05)
		assert.GreaterOrEqual(t, c.Lat, domain.Depot.Lat-0.05)
		assert.LessOrEqual(t, c.Lat, domain.Depot.Lat+0.05)
		assert.GreaterOrEqual(t, c.Lon, domain.Depot.Lon-0.05)
		assert.LessOrEqual(t, c.Lon, domain.Depot.Lon+0.05)
	}
}

func TestJitter_SameSeedSameSequence(t *testing.T) {
	a := NewJitter(7)
	b := NewJitter(7)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Around(domain.Depot, 0.15), b.Around(domain.Depot, 0.15))
	}
}

package services

import (
	"route-optimizer-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cluster(code string, weight float64) Cluster {
	return Cluster{
		PostalCode: code,
		Parcels:    []domain.Parcel{parcel(1, weight, "x", code)},
		Weight:     weight,
	}
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("", 100)
	require.NoError(t, err)
	assert.Equal(t, PolicyFirstAvailable, p.Name())

	p, err = PolicyByName(" Least-Loaded ", 80)
	require.NoError(t, err)
	assert.Equal(t, LeastLoaded{DefaultCapacity: 80}, p)

	_, err = PolicyByName("nearest-star", 100)
	assert.Error(t, err)
}

func TestFirstAvailable(t *testing.T) {
	routes := []domain.Route{route(3, "C", 1, nil), route(1, "A", 100, nil)}

	r, ok := FirstAvailable{}.SelectRoute(routes, map[int]float64{3: 1000}, cluster("10001", 50))
	require.True(t, ok)
	assert.Equal(t, 3, r.RouteID)

	_, ok = FirstAvailable{}.SelectRoute(nil, nil, cluster("10001", 1))
	assert.False(t, ok)

	_, ok = FirstAvailable{}.SelectRoute(routes, nil, Cluster{PostalCode: "10001"})
	assert.False(t, ok)
}

func TestLeastLoaded(t *testing.T) {
	routes := []domain.Route{
		route(1, "A", 0, nil), // default capacity
		route(2, "B", 50, nil),
		route(3, "C", 50, nil),
	}
	p := LeastLoaded{DefaultCapacity: 10}

	r, ok := p.SelectRoute(routes, map[int]float64{}, cluster("10001", 12))
	require.True(t, ok)
	assert.Equal(t, 2, r.RouteID, "A cannot hold 12; B and C tie so the earlier wins")

	r, ok = p.SelectRoute(routes, map[int]float64{2: 20, 3: 5}, cluster("10001", 12))
	require.True(t, ok)
	assert.Equal(t, 3, r.RouteID)

	_, ok = p.SelectRoute(routes, map[int]float64{2: 45, 3: 45}, cluster("10001", 12))
	assert.False(t, ok)
}

package services

import (
	"math"
	"route-optimizer-service/internal/domain"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouteState_Defaults(t *testing.T) {
	s := NewRouteState(7, "", nil, 0)

	assert.Equal(t, "Route-7", s.Name)
	assert.Equal(t, domain.Depot, s.Position)
	assert.Equal(t, DefaultCapacity, s.Capacity())
	assert.Zero(t, s.Load())
	assert.Empty(t, s.Parcels())
}

func TestRouteState_AddParcel(t *testing.T) {
	s := NewRouteState(1, "A", at(40.7, -74.0), 10)

	require.True(t, s.AddParcel(parcel(1, 6, "x", ""), 1.5))
	require.True(t, s.AddParcel(parcel(2, 4, "y", ""), 2.0))
	assert.False(t, s.AddParcel(parcel(3, 0.5, "z", ""), 9), "route is full")

	assert.Equal(t, 10.0, s.Load())
	assert.Equal(t, 3.5, s.Distance())
	assert.Equal(t, 100.0, s.UtilizationPercent())

	ids := []int{}
	for _, p := range s.Parcels() {
		ids = append(ids, p.ParcelID)
	}
	assert.Equal(t, []int{1, 2}, ids)
}

func TestRouteState_RejectsNonPositiveWeight(t *testing.T) {
	s := NewRouteState(1, "A", nil, 10)

	assert.False(t, s.CanAccommodate(0))
	assert.False(t, s.CanAccommodate(-3))
	assert.False(t, s.AddParcel(parcel(1, 0, "x", ""), 1))
	assert.Zero(t, s.Load())
}

func TestRouteState_FractionalWeightsFillExactly(t *testing.T) {
	s := NewRouteState(1, "A", nil, 0.3)

	require.True(t, s.AddParcel(parcel(1, 0.1, "x", ""), 0))
	require.True(t, s.AddParcel(parcel(2, 0.2, "y", ""), 0))
	assert.Equal(t, 0.3, s.Load())
	assert.False(t, s.CanAccommodate(0.0001))
}

func TestRouteState_ParcelsReturnsCopy(t *testing.T) {
	s := NewRouteState(1, "A", nil, 10)
	require.True(t, s.AddParcel(parcel(1, 1, "x", ""), 0))

	ps := s.Parcels()
	ps[0].ParcelID = 99

	assert.Equal(t, 1, s.Parcels()[0].ParcelID)
}

func TestRouteState_ConcurrentAddsRespectCapacity(t *testing.T) {
	s := NewRouteState(1, "A", nil, 50)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 1; i <= 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.AddParcel(parcel(i, 1, "x", ""), 0) {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, accepted)
	assert.Equal(t, 50.0, s.Load())
	assert.Len(t, s.Parcels(), 50)
}

func TestRouteCapacity(t *testing.T) {
	assert.Equal(t, 42.0, routeCapacity(domain.Route{TotalDistance: 42}, 100))
	assert.Equal(t, 75.0, routeCapacity(domain.Route{TotalDistance: 0}, 75))
	assert.Equal(t, 75.0, routeCapacity(domain.Route{TotalDistance: -5}, 75))
	assert.Equal(t, DefaultCapacity, routeCapacity(domain.Route{}, 0))
	assert.Equal(t, 75.0, routeCapacity(domain.Route{TotalDistance: math.Inf(1)}, 75))
	assert.Equal(t, 75.0, routeCapacity(domain.Route{TotalDistance: math.NaN()}, 75))
	assert.Equal(t, DefaultCapacity, routeCapacity(domain.Route{TotalDistance: math.NaN()}, math.Inf(1)))
}

func TestRouteState_RejectsNonFiniteWeight(t *testing.T) {
	s := NewRouteState(1, "A", nil, 10)

	for _, w := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		assert.False(t, s.CanAccommodate(w), "weight %v", w)
		assert.False(t, s.AddParcel(domain.Parcel{ParcelID: 1, Weight: w}, 0), "weight %v", w)
	}
	assert.Zero(t, s.Load())
	assert.Empty(t, s.Parcels())
}

func TestNewRouteState_NonFiniteCapacityFallsBack(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewRouteState(1, "A", nil, math.Inf(1)).Capacity())
	assert.Equal(t, DefaultCapacity, NewRouteState(1, "A", nil, math.NaN()).Capacity())
}

func TestRouteArena_IgnoresDuplicateIDs(t *testing.T) {
	a := newRouteArena(2)

	assert.True(t, a.add(NewRouteState(1, "A", nil, 10)))
	assert.False(t, a.add(NewRouteState(1, "B", nil, 20)))
	assert.True(t, a.add(NewRouteState(2, "C", nil, 30)))

	require.Len(t, a.order, 2)
	assert.Equal(t, "A", a.byID[1].Name)

	load, capacity := a.totals()
	assert.True(t, load.IsZero())
	assert.Equal(t, 40.0, capacity.InexactFloat64())
}

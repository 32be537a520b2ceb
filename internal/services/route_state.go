package services

import (
	"fmt"
	"math"
	"route-optimizer-service/internal/domain"
	"sync"

	"github.com/shopspring/decimal"
)

// DefaultCapacity is the carrying capacity of a route that declares none.
const DefaultCapacity = 100.0

// RouteState is the mutable assignment state of one route during one run.
//
// Load and capacity are kept as decimals so that the capacity check is exact
// for fractional weights. All methods are safe for concurrent use; a check and
// its commit happen under the same lock.
type RouteState struct {
	RouteID  int
	Name     string
	Position domain.Coordinates

	mu       sync.Mutex
	capacity decimal.Decimal
	load     decimal.Decimal
	parcels  []domain.Parcel
	distance float64
}

// NewRouteState creates the per-run state for a route. An empty name becomes
// "Route-<id>", a nil position becomes the depot and a non-positive or
// non-finite capacity becomes DefaultCapacity.
func NewRouteState(id int, name string, position *domain.Coordinates, capacity float64) *RouteState {
	if name == "" {
		name = fmt.Sprintf("Route-%d", id)
	}

	pos := domain.Depot
	if position != nil {
		pos = *position
	}

	if !usable(capacity) {
		capacity = DefaultCapacity
	}

	return &RouteState{
		RouteID:  id,
		Name:     name,
		Position: pos,
		capacity: decimal.NewFromFloat(capacity),
		load:     decimal.Zero,
	}
}

// routeCapacity reads a route's declared distance as its capacity,
// substituting fallback when the declared value is not positive and finite.
func routeCapacity(r domain.Route, fallback float64) float64 {
	if usable(r.TotalDistance) {
		return r.TotalDistance
	}
	if usable(fallback) {
		return fallback
	}
	return DefaultCapacity
}

// usable reports whether v is a positive finite number. NaN fails v > 0.
func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// CanAccommodate reports whether a positive finite weight still fits.
func (s *RouteState) CanAccommodate(weight float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fits(weight)
}

func (s *RouteState) fits(weight float64) bool {
	if !usable(weight) {
		return false
	}
	return s.load.Add(decimal.NewFromFloat(weight)).LessThanOrEqual(s.capacity)
}

// AddParcel commits parcel to the route and accumulates travelDistance.
// It does nothing and returns false when the parcel does not fit.
func (s *RouteState) AddParcel(parcel domain.Parcel, travelDistance float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fits(parcel.Weight) {
		return false
	}

	s.parcels = append(s.parcels, parcel)
	s.load = s.load.Add(decimal.NewFromFloat(parcel.Weight))
	s.distance += travelDistance
	return true
}

// UtilizationPercent returns load / capacity * 100, or 0 for zero capacity.
func (s *RouteState) UtilizationPercent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capacity.IsZero() {
		return 0
	}
	return s.load.Div(s.capacity).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

func (s *RouteState) Capacity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity.InexactFloat64()
}

func (s *RouteState) Load() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load.InexactFloat64()
}

func (s *RouteState) Distance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.distance
}

// Parcels returns a copy of the assigned parcels in assignment order.
func (s *RouteState) Parcels() []domain.Parcel {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Parcel, len(s.parcels))
	copy(out, s.parcels)
	return out
}

// routeArena holds the RouteStates of a single run, keyed by route id and in
// encounter order. It is discarded when the run ends.
type routeArena struct {
	byID  map[int]*RouteState
	order []*RouteState
}

func newRouteArena(capacity int) *routeArena {
	return &routeArena{
		byID:  make(map[int]*RouteState, capacity),
		order: make([]*RouteState, 0, capacity),
	}
}

// add registers s unless its route id is already present.
func (a *routeArena) add(s *RouteState) bool {
	if _, ok := a.byID[s.RouteID]; ok {
		return false
	}
	a.byID[s.RouteID] = s
	a.order = append(a.order, s)
	return true
}

// totals returns the summed load and capacity over every route.
func (a *routeArena) totals() (load, capacity decimal.Decimal) {
	for _, s := range a.order {
		s.mu.Lock()
		load = load.Add(s.load)
		capacity = capacity.Add(s.capacity)
		s.mu.Unlock()
	}
	return load, capacity
}

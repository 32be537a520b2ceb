package services

import (
	"context"
	"errors"
	"route-optimizer-service/internal/adapters/geocode"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errSourceDown = errors.New("source down")

// failingSource returns errSourceDown for whichever side is flagged.
type failingSource struct {
	parcels     []domain.Parcel
	routes      []domain.Route
	failParcels bool
	failRoutes  bool
}

func (f failingSource) ListParcels(context.Context) ([]domain.Parcel, error) {
	if f.failParcels {
		return nil, errSourceDown
	}
	return f.parcels, nil
}

func (f failingSource) ListRoutes(context.Context) ([]domain.Route, error) {
	if f.failRoutes {
		return nil, errSourceDown
	}
	return f.routes, nil
}

type panickingRoutes struct{}

func (panickingRoutes) ListRoutes(context.Context) ([]domain.Route, error) {
	panic("route table corrupted")
}

// cancelAfterFirst cancels the run context once the first address resolves.
type cancelAfterFirst struct {
	next   ports.Geocoder
	cancel context.CancelFunc
	once   sync.Once
}

func (g *cancelAfterFirst) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	c, err := g.next.Resolve(ctx, address)
	g.once.Do(g.cancel)
	return c, err
}

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := now
		now = now.Add(step)
		return t
	}
}

func at(lat, lon float64) *domain.Coordinates {
	return &domain.Coordinates{Lat: lat, Lon: lon}
}

func parcel(id int, weight float64, address, postal string) domain.Parcel {
	return domain.Parcel{
		ParcelID:              id,
		TrackingNumber:        "T" + address,
		Weight:                weight,
		DestinationAddress:    address,
		DestinationPostalCode: postal,
	}
}

func route(id int, name string, capacity float64, pos *domain.Coordinates) domain.Route {
	return domain.Route{RouteID: id, Name: name, TotalDistance: capacity, Position: pos}
}

// Addresses used across the engine tests, a few km apart in Manhattan.
var testAddresses = map[string]domain.Coordinates{
	"north":  {Lat: 40.80, Lon: -73.95},
	"middle": {Lat: 40.75, Lon: -73.99},
	"south":  {Lat: 40.70, Lon: -74.01},
}

func newTestEngine(t *testing.T, parcels []domain.Parcel, routes []domain.Route, opts Options) *Engine {
	t.Helper()
	return newEngineWith(t, parcels, routes, geocode.NewStaticGeocoder(testAddresses), opts)
}

func newEngineWith(
	t *testing.T,
	parcels []domain.Parcel,
	routes []domain.Route,
	geocoder ports.Geocoder,
	opts Options,
) *Engine {
	t.Helper()

	repo := repositories.NewMemoryRepository(parcels, routes)
	if opts.Clock == nil {
		opts.Clock = stepClock(time.Millisecond)
	}

	e, err := NewEngine(repo, repo, geocoder, opts)
	require.NoError(t, err)
	return e
}

// assertWellFormed checks the properties every result must satisfy.
func assertWellFormed(t *testing.T, res OptimizationResult) {
	t.Helper()

	require.Equal(t, res.TotalParcels, res.AssignedParcels+res.UnassignedParcels, "conservation")
	require.GreaterOrEqual(t, res.Efficiency, 0.0)
	require.LessOrEqual(t, res.Efficiency, 100.0)

	seen := make(map[int]string)
	assigned := 0
	for key, ps := range res.RouteAssignments {
		for _, p := range ps {
			prev, dup := seen[p.ParcelID]
			require.False(t, dup, "parcel %d on %q and %q", p.ParcelID, prev, key)
			seen[p.ParcelID] = key
			require.True(t, p.Weight > 0, "parcel %d has weight %v", p.ParcelID, p.Weight)
		}
		assigned += len(ps)
	}
	require.Equal(t, res.AssignedParcels, assigned)
}

// panicOnSecond resolves the first address and panics on the next one.
type panicOnSecond struct {
	next  ports.Geocoder
	mu    sync.Mutex
	calls int
}

func (g *panicOnSecond) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.mu.Unlock()
	if n > 1 {
		panic("geocoder state corrupted")
	}
	return g.next.Resolve(ctx, address)
}

// cancelDuringResolve cancels the run context from inside the lookup and
// reports the context error, as an HTTP client would.
type cancelDuringResolve struct {
	cancel context.CancelFunc
}

func (g cancelDuringResolve) Resolve(ctx context.Context, _ string) (domain.Coordinates, error) {
	g.cancel()
	return domain.Coordinates{}, ctx.Err()
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/ports"
	"time"
)

// RoutePositionSpread is the jitter, in degrees, applied around the depot when
// a route has no stored position.
const RoutePositionSpread = 0.05

// DistanceFunc measures the distance between two points. A nil point must
// yield +Inf.
type DistanceFunc func(a, b *domain.Coordinates) float64

// PositionFunc returns the position to use for a route that stores none.
type PositionFunc func(r domain.Route) *domain.Coordinates

// JitterPositions places routes at random points around depot.
func JitterPositions(j *geo.Jitter, depot domain.Coordinates, spread float64) PositionFunc {
	return func(domain.Route) *domain.Coordinates {
		c := j.Around(depot, spread)
		return &c
	}
}

// Options tune an Engine. Zero values select the defaults.
type Options struct {
	// Capacity of routes that declare no positive distance.
	DefaultCapacity float64
	// Number of goroutines scanning routes per parcel; <= 1 scans sequentially.
	ScanWorkers int
	// Route choice for whole clusters; FirstAvailable when nil.
	Policy RouteSelectionPolicy
	// Defaults to geo.Haversine.
	Distance DistanceFunc
	// Defaults to JitterPositions around domain.Depot.
	Positions PositionFunc
	Clock     func() time.Time
}

// Engine assigns stored parcels to stored routes. It keeps no state between
// runs; every run fetches its input and builds a fresh route arena.
type Engine struct {
	parcels  ports.ParcelSource
	routes   ports.RouteSource
	geocoder ports.Geocoder
	opts     Options
}

func NewEngine(
	parcels ports.ParcelSource,
	routes ports.RouteSource,
	geocoder ports.Geocoder,
	opts Options,
) (*Engine, error) {
	if parcels == nil || routes == nil {
		return nil, errors.New("new engine: parcel and route sources must be non-nil")
	}
	if geocoder == nil {
		return nil, errors.New("new engine: geocoder must be non-nil")
	}

	if opts.DefaultCapacity <= 0 {
		opts.DefaultCapacity = DefaultCapacity
	}
	if opts.ScanWorkers < 1 {
		opts.ScanWorkers = 1
	}
	if opts.Policy == nil {
		opts.Policy = FirstAvailable{}
	}
	if opts.Distance == nil {
		opts.Distance = geo.Haversine
	}
	if opts.Positions == nil {
		opts.Positions = JitterPositions(geo.NewJitter(0), domain.Depot, RoutePositionSpread)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Engine{
		parcels:  parcels,
		routes:   routes,
		geocoder: geocoder,
		opts:     opts,
	}, nil
}

// Policy returns the cluster route-selection policy in use.
func (e *Engine) Policy() RouteSelectionPolicy { return e.opts.Policy }

// runInput is the validated input shared by both assignment strategies.
type runInput struct {
	total   int
	invalid int
	parcels []domain.Parcel
	routes  []domain.Route
}

// fetchInput reads parcels and routes and drops the ones that cannot take
// part in an assignment.
func (e *Engine) fetchInput(ctx context.Context, op string) (runInput, error) {
	all, err := e.parcels.ListParcels(ctx)
	if err != nil {
		return runInput{}, fmt.Errorf("%s: list parcels: %w", op, err)
	}

	routes, err := e.routes.ListRoutes(ctx)
	if err != nil {
		return runInput{total: len(all)}, fmt.Errorf("%s: list routes: %w", op, err)
	}

	in := runInput{
		total:   len(all),
		parcels: make([]domain.Parcel, 0, len(all)),
		routes:  make([]domain.Route, 0, len(routes)),
	}

	for _, p := range all {
		if !p.Assignable() {
			in.invalid++
			log.Printf("%s: skipping parcel_id=%d: weight=%.2f must be positive", op, p.ParcelID, p.Weight)
			continue
		}
		in.parcels = append(in.parcels, p)
	}

	for _, r := range routes {
		if r.WellFormed() {
			in.routes = append(in.routes, r)
		}
	}

	log.Printf("%s: parcels=%d valid=%d routes=%d usable=%d",
		op, in.total, len(in.parcels), len(routes), len(in.routes))

	return in, nil
}

// newArena creates one RouteState per distinct route id.
func (e *Engine) newArena(routes []domain.Route) *routeArena {
	arena := newRouteArena(len(routes))
	for _, r := range routes {
		pos := r.Position
		if pos == nil {
			pos = e.opts.Positions(r)
		}

		s := NewRouteState(r.RouteID, r.Name, pos, routeCapacity(r, e.opts.DefaultCapacity))
		if !arena.add(s) {
			log.Printf("route arena: duplicate route_id=%d ignored", r.RouteID)
		}
	}
	return arena
}

// recoverRun turns a panic inside a run into an error result.
func recoverRun(agg *aggregator, res *OptimizationResult, errp *error) {
	if r := recover(); r != nil {
		*errp = fmt.Errorf("internal fault: %v", r)
		*res = agg.failed(*errp)
	}
}

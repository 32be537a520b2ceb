package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"slices"

	"golang.org/x/sync/errgroup"
)

// RunGreedyAssignment assigns parcels to routes with the flood-fill heuristic.
//
// Parcels are placed heaviest first. Each goes to the capacity-feasible route
// whose position is nearest to the parcel's destination; when no distance can
// be computed the first route with room takes it. The run never fails: fetch
// errors, cancellation and panics are reported through the result's status.
func (e *Engine) RunGreedyAssignment(ctx context.Context) (res OptimizationResult) {
	var err error
	defer obs.Time(ctx, "optimizer.RunGreedyAssignment")(&err)

	agg := newAggregator(AlgorithmFloodFill, e.opts.Clock)
	defer recoverRun(agg, &res, &err)

	in, err := e.fetchInput(ctx, "greedy assignment")
	agg.total(in.total)
	if err != nil {
		return agg.failed(err)
	}
	agg.unassigned(in.invalid)

	if len(in.parcels) == 0 || len(in.routes) == 0 {
		log.Printf("greedy assignment: no parcels or routes available")
		return agg.empty()
	}

	arena := e.newArena(in.routes)
	agg.track(arena)

	sorted := slices.Clone(in.parcels)
	slices.SortStableFunc(sorted, func(a, b domain.Parcel) int {
		return cmp.Compare(b.Weight, a.Weight)
	})

	for _, p := range sorted {
		if err = ctx.Err(); err != nil {
			err = fmt.Errorf("greedy assignment: %w", err)
			return agg.failed(err)
		}

		ok, placeErr := e.place(ctx, arena, p)
		if placeErr != nil {
			err = fmt.Errorf("greedy assignment: parcel_id=%d: %w", p.ParcelID, placeErr)
			return agg.failed(err)
		}

		if ok {
			agg.assigned(1)
			continue
		}
		agg.unassigned(1)
		log.Printf("greedy assignment: could not assign parcel_id=%d weight=%.2f", p.ParcelID, p.Weight)
	}

	return agg.greedyDone(arena)
}

// place commits p to the nearest feasible route, or to the first route with
// room when no route is distance-comparable.
func (e *Engine) place(ctx context.Context, arena *routeArena, p domain.Parcel) (bool, error) {
	dest, err := e.locate(ctx, p)
	if err != nil {
		return false, err
	}

	best, dist, err := e.nearestFeasible(ctx, arena, p.Weight, dest)
	if err != nil {
		return false, err
	}
	if best != nil && best.AddParcel(p, dist) {
		return true, nil
	}

	// No comparable distance: first route with room.
	for _, s := range arena.order {
		if s.AddParcel(p, 0) {
			return true, nil
		}
	}
	return false, nil
}

// locate resolves the parcel's destination; nil means unknown. Only a
// cancelled or expired context is returned as an error.
func (e *Engine) locate(ctx context.Context, p domain.Parcel) (*domain.Coordinates, error) {
	c, err := e.geocoder.Resolve(ctx, p.DestinationAddress)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		log.Printf("greedy assignment: parcel_id=%d: %v", p.ParcelID, err)
		return nil, nil
	}
	return &c, nil
}

// nearestFeasible returns the route with room for weight that is closest to
// dest. Ties keep the route encountered first. A nil result means no feasible
// route has a finite distance.
func (e *Engine) nearestFeasible(
	ctx context.Context,
	arena *routeArena,
	weight float64,
	dest *domain.Coordinates,
) (*RouteState, float64, error) {
	workers := min(e.opts.ScanWorkers, len(arena.order))
	if workers <= 1 {
		best, dist := e.scan(arena.order, weight, dest)
		return best, dist, nil
	}

	type candidate struct {
		state *RouteState
		dist  float64
	}

	// Contiguous chunks keep encounter order when partial minima are merged.
	chunk := (len(arena.order) + workers - 1) / workers
	partial := make([]candidate, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(arena.order) {
			break
		}
		end := min(start+chunk, len(arena.order))

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, d := e.scan(arena.order[start:end], weight, dest)
			partial[w] = candidate{state: s, dist: d}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, math.Inf(1), fmt.Errorf("scan routes: %w", err)
	}

	best := candidate{dist: math.Inf(1)}
	for _, c := range partial {
		if c.state != nil && c.dist < best.dist {
			best = c
		}
	}
	if best.state == nil {
		return nil, math.Inf(1), nil
	}
	return best.state, best.dist, nil
}

func (e *Engine) scan(states []*RouteState, weight float64, dest *domain.Coordinates) (*RouteState, float64) {
	var best *RouteState
	minDist := math.Inf(1)

	for _, s := range states {
		if !s.CanAccommodate(weight) {
			continue
		}

		pos := s.Position
		d := e.opts.Distance(&pos, dest)
		if d < minDist {
			minDist = d
			best = s
		}
	}

	return best, minDist
}

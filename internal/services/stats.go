package services

import (
	"context"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	StatusHealthy = "System healthy"
	StatusError   = "Error"
)

// Stats summarizes stored parcels and routes independently of any run.
type Stats struct {
	TotalParcels       int
	TotalRoutes        int
	AvgParcelsPerRoute float64
	Algorithm          string
	Timestamp          time.Time
	Status             string
	Error              string
}

// Stats counts stored parcels and routes. It reads both sources concurrently
// and never touches a route arena.
func (e *Engine) Stats(ctx context.Context) Stats {
	var err error
	defer obs.Time(ctx, "optimizer.Stats")(&err)

	var parcels []domain.Parcel
	var routes []domain.Route

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var lerr error
		parcels, lerr = e.parcels.ListParcels(gctx)
		if lerr != nil {
			return fmt.Errorf("list parcels: %w", lerr)
		}
		return nil
	})
	g.Go(func() error {
		var lerr error
		routes, lerr = e.routes.ListRoutes(gctx)
		if lerr != nil {
			return fmt.Errorf("list routes: %w", lerr)
		}
		return nil
	})

	st := Stats{
		Algorithm: AlgorithmFloodFill,
		Timestamp: e.opts.Clock(),
	}

	if err = g.Wait(); err != nil {
		err = fmt.Errorf("stats: %w", err)
		st.Status = StatusError
		st.Error = err.Error()
		return st
	}

	st.TotalParcels = len(parcels)
	st.TotalRoutes = len(routes)
	if st.TotalRoutes > 0 {
		st.AvgParcelsPerRoute = float64(st.TotalParcels) / float64(st.TotalRoutes)
	}
	st.Status = StatusHealthy
	return st
}

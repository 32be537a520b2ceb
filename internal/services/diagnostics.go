package services

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// ParcelDiagnostics describes what the parcel source currently returns.
type ParcelDiagnostics struct {
	Reachable   bool
	Error       string
	TotalCount  int
	NonPositive int // parcels with weight <= 0
	Valid       int
	Sample      *domain.Parcel
}

// RouteDiagnostics describes what the route source currently returns.
type RouteDiagnostics struct {
	Reachable    bool
	Error        string
	TotalCount   int
	ZeroDistance int // routes falling back to the default capacity
	Valid        int
	Sample       *domain.Route
}

type Diagnostics struct {
	Parcels     ParcelDiagnostics
	Routes      RouteDiagnostics
	CanOptimize bool
}

// Diagnostics inspects both sources so that an operator can tell why a run
// reports no parcels or routes.
func (e *Engine) Diagnostics(ctx context.Context) Diagnostics {
	var d Diagnostics

	parcels, err := e.parcels.ListParcels(ctx)
	if err != nil {
		d.Parcels.Error = err.Error()
	} else {
		d.Parcels.Reachable = true
		d.Parcels.TotalCount = len(parcels)
		for _, p := range parcels {
			if !p.Assignable() {
				d.Parcels.NonPositive++
			}
		}
		d.Parcels.Valid = d.Parcels.TotalCount - d.Parcels.NonPositive
		if len(parcels) > 0 {
			first := parcels[0]
			d.Parcels.Sample = &first
		}
	}

	routes, err := e.routes.ListRoutes(ctx)
	if err != nil {
		d.Routes.Error = err.Error()
	} else {
		d.Routes.Reachable = true
		d.Routes.TotalCount = len(routes)
		for _, r := range routes {
			if r.TotalDistance <= 0 {
				d.Routes.ZeroDistance++
			}
		}
		d.Routes.Valid = d.Routes.TotalCount - d.Routes.ZeroDistance
		if len(routes) > 0 {
			first := routes[0]
			d.Routes.Sample = &first
		}
	}

	d.CanOptimize = d.Parcels.Reachable && d.Routes.Reachable &&
		d.Parcels.TotalCount > 0 && d.Routes.TotalCount > 0

	return d
}

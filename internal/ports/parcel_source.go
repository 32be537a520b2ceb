package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Port: a boundary for bulk-reading parcels from a data source.
type ParcelSource interface {
	// Retrieve every stored parcel, in storage order.
	ListParcels(ctx context.Context) ([]domain.Parcel, error)
}

// Port: a boundary for bulk-reading delivery routes from a data source.
type RouteSource interface {
	// Retrieve every stored route, in storage order.
	ListRoutes(ctx context.Context) ([]domain.Route, error)
}

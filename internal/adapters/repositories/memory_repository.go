package repositories

import (
	"context"
	"route-optimizer-service/internal/domain"
	"slices"
)

// In-memory implementation of the ParcelSource and RouteSource ports.
// Used for local runs without DATABASE_URL and as a fake in tests.
// Contents are fixed at construction.
type MemoryRepository struct {
	parcels []domain.Parcel
	routes  []domain.Route
}

func NewMemoryRepository(parcels []domain.Parcel, routes []domain.Route) *MemoryRepository {
	return &MemoryRepository{
		parcels: slices.Clone(parcels),
		routes:  slices.Clone(routes),
	}
}

// Return a copy of all stored parcels.
func (m *MemoryRepository) ListParcels(ctx context.Context) ([]domain.Parcel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(m.parcels), nil
}

// Return a copy of all stored routes.
func (m *MemoryRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(m.routes), nil
}

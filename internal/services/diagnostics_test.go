package services

import (
	"context"
	"route-optimizer-service/internal/adapters/geocode"
	"route-optimizer-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	parcels := []domain.Parcel{
		parcel(4, 5, "north", "10001"),
		parcel(5, 0, "north", "10001"),
		parcel(6, -1, "south", "20002"),
	}
	routes := []domain.Route{route(1, "A", 10, nil), route(2, "B", 0, nil)}
	e := newTestEngine(t, parcels, routes, Options{})

	d := e.Diagnostics(context.Background())

	assert.True(t, d.Parcels.Reachable)
	assert.Equal(t, 3, d.Parcels.TotalCount)
	assert.Equal(t, 2, d.Parcels.NonPositive)
	assert.Equal(t, 1, d.Parcels.Valid)
	require.NotNil(t, d.Parcels.Sample)
	assert.Equal(t, 4, d.Parcels.Sample.ParcelID)

	assert.True(t, d.Routes.Reachable)
	assert.Equal(t, 2, d.Routes.TotalCount)
	assert.Equal(t, 1, d.Routes.ZeroDistance)
	assert.Equal(t, 1, d.Routes.Valid)
	require.NotNil(t, d.Routes.Sample)
	assert.Equal(t, "A", d.Routes.Sample.Name)

	assert.True(t, d.CanOptimize)
}

func TestDiagnostics_Empty(t *testing.T) {
	e := newTestEngine(t, nil, nil, Options{})

	d := e.Diagnostics(context.Background())

	assert.True(t, d.Parcels.Reachable)
	assert.Nil(t, d.Parcels.Sample)
	assert.Nil(t, d.Routes.Sample)
	assert.False(t, d.CanOptimize)
}

func TestDiagnostics_RouteSourceDown(t *testing.T) {
	src := failingSource{parcels: []domain.Parcel{parcel(1, 2, "north", "")}, failRoutes: true}
	e, err := NewEngine(src, src, geocode.NewStaticGeocoder(nil), Options{})
	require.NoError(t, err)

	d := e.Diagnostics(context.Background())

	assert.True(t, d.Parcels.Reachable)
	assert.Equal(t, 1, d.Parcels.TotalCount)
	assert.False(t, d.Routes.Reachable)
	assert.Contains(t, d.Routes.Error, errSourceDown.Error())
	assert.False(t, d.CanOptimize)
}

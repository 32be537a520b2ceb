package geocode

import (
	"context"
	"errors"
	"math"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "1 Main St, Springfield", Normalize("  1  Main St,\tSpringfield \n"))
	assert.Equal(t, "", Normalize("   "))
}

func TestJitterGeocoder(t *testing.T) {
	g := NewJitterGeocoder(domain.Depot, AddressSpread, geo.NewJitter(11))

	c, err := g.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, domain.Depot, c, "empty address resolves to the center")

	for range 200 {
		c, err := g.Resolve(context.Background(), "1 Main St")
		require.NoError(t, err)
		assert.LessOrEqual(t, math.Abs(c.Lat-domain.Depot.Lat), AddressSpread)
		assert.LessOrEqual(t, math.Abs(c.Lon-domain.Depot.Lon), AddressSpread)
	}
}

func TestStaticGeocoder(t *testing.T) {
	g := NewStaticGeocoder(map[string]domain.Coordinates{
		"1  Main St": {Lat: 1, Lon: 2},
	})

	c, err := g.Resolve(context.Background(), " 1 Main   St ")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: 1, Lon: 2}, c)

	_, err = g.Resolve(context.Background(), "2 Main St")
	var re *ports.ResolutionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "2 Main St", re.Address)
}

// memCache is a map-backed GeocodeCache that can be told to fail.
type memCache struct {
	entries map[string]domain.Coordinates
	gets    int
	puts    int
	fail    bool
}

func (m *memCache) GetMany(_ context.Context, addrs []string) (map[string]domain.Coordinates, error) {
	m.gets++
	if m.fail {
		return nil, errors.New("cache down")
	}
	out := map[string]domain.Coordinates{}
	for _, a := range addrs {
		if c, ok := m.entries[a]; ok {
			out[a] = c
		}
	}
	return out, nil
}

func (m *memCache) PutMany(_ context.Context, results map[string]domain.Coordinates) error {
	m.puts++
	if m.fail {
		return errors.New("cache down")
	}
	for k, v := range results {
		m.entries[k] = v
	}
	return nil
}

// countingGeocoder counts lookups that reach the backend.
type countingGeocoder struct {
	next  ports.Geocoder
	calls int
}

func (c *countingGeocoder) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	c.calls++
	return c.next.Resolve(ctx, address)
}

func TestCachedGeocoder_StoresAndReuses(t *testing.T) {
	backend := &countingGeocoder{next: NewStaticGeocoder(map[string]domain.Coordinates{
		"1 Main St": {Lat: 1, Lon: 2},
	})}
	cache := &memCache{entries: map[string]domain.Coordinates{}}
	g := NewCachedGeocoder(backend, cache)

	for range 3 {
		c, err := g.Resolve(context.Background(), "1   Main St")
		require.NoError(t, err)
		assert.Equal(t, domain.Coordinates{Lat: 1, Lon: 2}, c)
	}

	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, 1, cache.puts)
	assert.Contains(t, cache.entries, "1 Main St")
}

func TestCachedGeocoder_CacheFailureFallsThrough(t *testing.T) {
	backend := &countingGeocoder{next: NewStaticGeocoder(map[string]domain.Coordinates{
		"1 Main St": {Lat: 1, Lon: 2},
	})}
	g := NewCachedGeocoder(backend, &memCache{fail: true})

	c, err := g.Resolve(context.Background(), "1 Main St")

	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Lat)
	assert.Equal(t, 1, backend.calls)
}

func TestCachedGeocoder_DoesNotCacheFailures(t *testing.T) {
	cache := &memCache{entries: map[string]domain.Coordinates{}}
	g := NewCachedGeocoder(NewStaticGeocoder(nil), cache)

	_, err := g.Resolve(context.Background(), "nowhere")

	var re *ports.ResolutionError
	assert.ErrorAs(t, err, &re)
	assert.Zero(t, cache.puts)
}

package geocode

import (
	"context"
	"fmt"
	"log"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// CachedGeocoder consults a GeocodeCache before falling through to the
// wrapped Geocoder and stores fresh results back. Cache failures are logged
// and never fail a lookup.
type CachedGeocoder struct {
	next  ports.Geocoder
	cache ports.GeocodeCache
}

func NewCachedGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache}
}

func (g *CachedGeocoder) Resolve(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cached.Resolve")(&err)

	norm := Normalize(address)
	if norm == "" {
		return g.next.Resolve(ctx, address)
	}

	hits, err := g.cache.GetMany(ctx, []string{norm})
	if err != nil {
		log.Printf("req_id=%s geocode cache read failed address=%q err=%v", obs.RequestID(ctx), norm, err)
	} else if c, ok := hits[norm]; ok {
		return c, nil
	}

	c, err := g.next.Resolve(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("cached geocoder: %w", err)
	}

	if perr := g.cache.PutMany(ctx, map[string]domain.Coordinates{norm: c}); perr != nil {
		log.Printf("req_id=%s geocode cache write failed address=%q err=%v", obs.RequestID(ctx), norm, perr)
	}

	return c, nil
}

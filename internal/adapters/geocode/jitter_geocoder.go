package geocode

import (
	"context"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

// AddressSpread is the jitter, in degrees, applied around the center when
// resolving an address without a real geocoding backend.
const AddressSpread = 0.15

// JitterGeocoder places every address at a random point near a fixed center.
// An empty address resolves to the center itself. It never fails.
type JitterGeocoder struct {
	center domain.Coordinates
	spread float64
	jitter *geo.Jitter
}

func NewJitterGeocoder(center domain.Coordinates, spread float64, j *geo.Jitter) *JitterGeocoder {
	if spread <= 0 {
		spread = AddressSpread
	}
	if j == nil {
		j = geo.NewJitter(0)
	}
	return &JitterGeocoder{center: center, spread: spread, jitter: j}
}

func (g *JitterGeocoder) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	if Normalize(address) == "" {
		return g.center, nil
	}
	return g.jitter.Around(g.center, g.spread), nil
}

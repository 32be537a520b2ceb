package geocode

import (
	"context"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// StaticGeocoder resolves addresses from a fixed table. Keys are normalized
// on construction. Unknown addresses yield a *ports.ResolutionError.
type StaticGeocoder struct {
	table map[string]domain.Coordinates
}

func NewStaticGeocoder(table map[string]domain.Coordinates) *StaticGeocoder {
	t := make(map[string]domain.Coordinates, len(table))
	for k, v := range table {
		t[Normalize(k)] = v
	}
	return &StaticGeocoder{table: t}
}

func (g *StaticGeocoder) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	c, ok := g.table[Normalize(address)]
	if !ok {
		return domain.Coordinates{}, &ports.ResolutionError{Address: address}
	}
	return c, nil
}

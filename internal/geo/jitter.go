package geo

import (
	"math/rand/v2"
	"route-optimizer-service/internal/domain"
	"sync"
	"time"
)

// Jitter produces coordinates scattered uniformly around a center point.
// It stands in for real positions (route depots, parcel addresses) that the
// back office does not store. Safe for concurrent use.
type Jitter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewJitter returns a Jitter seeded with seed. A zero seed uses the clock.
func NewJitter(seed uint64) *Jitter {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Jitter{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Around returns center shifted by independent offsets in [-spread, spread)
// degrees on each axis.
func (j *Jitter) Around(center domain.Coordinates, spread float64) domain.Coordinates {
	j.mu.Lock()
	dLat := j.rng.Float64()*2*spread - spread
	dLon := j.rng.Float64()*2*spread - spread
	j.mu.Unlock()

	return domain.Coordinates{
		Lat: center.Lat + dLat,
		Lon: center.Lon + dLon,
	}
}

package ports

import (
	"context"
	"fmt"
	"route-optimizer-service/internal/domain"
)

// Contract for turning a destination address into coordinates.
type Geocoder interface {
	// Resolve returns the coordinates of address, or a *ResolutionError
	// when the address cannot be resolved.
	Resolve(ctx context.Context, address string) (domain.Coordinates, error)
}

// ResolutionError reports an address that could not be turned into coordinates.
type ResolutionError struct {
	Address string
	Err     error
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("resolve address %q: unresolvable", e.Address)
	}
	return fmt.Sprintf("resolve address %q: %v", e.Address, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

package domain

import (
	"math"
	"strings"
)

// Represents a single shipment waiting to be delivered.
// Parcels are owned by the persistence layer; the optimizer only reads them.
type Parcel struct {
	ParcelID              int
	TrackingNumber        string
	Weight                float64
	DestinationAddress    string
	DestinationPostalCode string
	Status                string
}

// Assignable reports whether the parcel carries a positive, finite weight.
func (p Parcel) Assignable() bool {
	return p.Weight > 0 && !math.IsInf(p.Weight, 0)
}

// PostalCode returns the trimmed destination postal code ("" when absent).
func (p Parcel) PostalCode() string {
	return strings.TrimSpace(p.DestinationPostalCode)
}

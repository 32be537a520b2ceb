package domain

// Immutable geographic coordinates in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Depot is the fixed reference point used when a route or address has no position.
var Depot = Coordinates{Lat: 40.7128, Lon: -74.0060}

package domain

import "strings"

// Represents a delivery route as stored by the back office.
//
// TotalDistance is the declared distance of the route. The optimizer also
// reads it as the route's carrying capacity when it is positive.
// Position is nil for stored routes; the optimizer synthesizes one per run.
type Route struct {
	RouteID       int
	Name          string
	Description   string
	PostalCode    string
	TotalDistance float64
	Position      *Coordinates
}

// WellFormed reports whether the route has an identifier and a name.
func (r Route) WellFormed() bool {
	return r.RouteID > 0 && strings.TrimSpace(r.Name) != ""
}

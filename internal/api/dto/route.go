package dto

import "route-optimizer-service/internal/domain"

type RouteResponse struct {
	RouteID       int     `json:"route_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	PostalCode    string  `json:"postal_code,omitempty"`
	TotalDistance float64 `json:"total_distance"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}

func NewRouteResponse(r domain.Route) RouteResponse {
	return RouteResponse{
		RouteID:       r.RouteID,
		Name:          r.Name,
		Description:   r.Description,
		PostalCode:    r.PostalCode,
		TotalDistance: r.TotalDistance,
	}
}

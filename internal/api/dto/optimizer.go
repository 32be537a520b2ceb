package dto

import (
	"route-optimizer-service/internal/services"
	"time"
)

type OptimizationResponse struct {
	Algorithm         string                      `json:"algorithm"`
	Outcome           string                      `json:"outcome"`
	Status            string                      `json:"status"`
	RouteAssignments  map[string][]ParcelResponse `json:"route_assignments"`
	RouteLoads        map[string]float64          `json:"route_loads"`
	RouteUtilization  map[string]float64          `json:"route_utilization"`
	RouteDistances    map[string]float64          `json:"route_distances"`
	ClusterRoutes     map[string]string           `json:"cluster_routes,omitempty"`
	TotalDistance     float64                     `json:"total_distance"`
	Efficiency        float64                     `json:"efficiency"`
	AssignedParcels   int                         `json:"assigned_parcels"`
	UnassignedParcels int                         `json:"unassigned_parcels"`
	TotalParcels      int                         `json:"total_parcels"`
	ExecutionTimeMs   int64                       `json:"execution_time_ms"`
}

func NewOptimizationResponse(res services.OptimizationResult) OptimizationResponse {
	assignments := make(map[string][]ParcelResponse, len(res.RouteAssignments))
	for k, ps := range res.RouteAssignments {
		assignments[k] = NewParcelList(ps)
	}

	return OptimizationResponse{
		Algorithm:         res.Algorithm,
		Outcome:           string(res.Outcome),
		Status:            res.Status,
		RouteAssignments:  assignments,
		RouteLoads:        res.RouteLoads,
		RouteUtilization:  res.RouteUtilization,
		RouteDistances:    res.RouteDistances,
		ClusterRoutes:     res.ClusterRoutes,
		TotalDistance:     res.TotalDistance,
		Efficiency:        res.Efficiency,
		AssignedParcels:   res.AssignedParcels,
		UnassignedParcels: res.UnassignedParcels,
		TotalParcels:      res.TotalParcels,
		ExecutionTimeMs:   res.ExecutionTimeMs,
	}
}

type StatsResponse struct {
	TotalParcels       int       `json:"total_parcels"`
	TotalRoutes        int       `json:"total_routes"`
	AvgParcelsPerRoute float64   `json:"avg_parcels_per_route"`
	Algorithm          string    `json:"algorithm"`
	Timestamp          time.Time `json:"timestamp"`
	Status             string    `json:"status"`
	Error              string    `json:"error,omitempty"`
}

func NewStatsResponse(st services.Stats) StatsResponse {
	return StatsResponse{
		TotalParcels:       st.TotalParcels,
		TotalRoutes:        st.TotalRoutes,
		AvgParcelsPerRoute: st.AvgParcelsPerRoute,
		Algorithm:          st.Algorithm,
		Timestamp:          st.Timestamp,
		Status:             st.Status,
		Error:              st.Error,
	}
}

type OptimizerHealthResponse struct {
	Status        string    `json:"status"`
	Algorithm     string    `json:"algorithm"`
	ClusterPolicy string    `json:"cluster_policy"`
	Version       string    `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
}

type ParcelTableResponse struct {
	Status      string          `json:"status"`
	Error       string          `json:"error,omitempty"`
	TotalCount  int             `json:"total_count"`
	NonPositive int             `json:"zero_or_negative_weights"`
	Valid       int             `json:"valid_parcels"`
	Sample      *ParcelResponse `json:"first_parcel_sample,omitempty"`
}

type RouteTableResponse struct {
	Status       string         `json:"status"`
	Error        string         `json:"error,omitempty"`
	TotalCount   int            `json:"total_count"`
	ZeroDistance int            `json:"zero_distance"`
	Valid        int            `json:"valid_routes"`
	Sample       *RouteResponse `json:"first_route_sample,omitempty"`
}

type DiagnosticsResponse struct {
	Parcels     ParcelTableResponse `json:"parcel_table"`
	Routes      RouteTableResponse  `json:"route_table"`
	CanOptimize bool                `json:"can_optimize"`
}

func NewDiagnosticsResponse(d services.Diagnostics) DiagnosticsResponse {
	res := DiagnosticsResponse{
		Parcels: ParcelTableResponse{
			Status:      tableStatus(d.Parcels.Reachable),
			Error:       d.Parcels.Error,
			TotalCount:  d.Parcels.TotalCount,
			NonPositive: d.Parcels.NonPositive,
			Valid:       d.Parcels.Valid,
		},
		Routes: RouteTableResponse{
			Status:       tableStatus(d.Routes.Reachable),
			Error:        d.Routes.Error,
			TotalCount:   d.Routes.TotalCount,
			ZeroDistance: d.Routes.ZeroDistance,
			Valid:        d.Routes.Valid,
		},
		CanOptimize: d.CanOptimize,
	}

	if d.Parcels.Sample != nil {
		p := NewParcelResponse(*d.Parcels.Sample)
		res.Parcels.Sample = &p
	}
	if d.Routes.Sample != nil {
		r := NewRouteResponse(*d.Routes.Sample)
		res.Routes.Sample = &r
	}

	return res
}

func tableStatus(reachable bool) string {
	if reachable {
		return "connected"
	}
	return "error"
}

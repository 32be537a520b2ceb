package services

import (
	"fmt"
	"route-optimizer-service/internal/domain"
	"strings"
)

// RouteSelectionPolicy picks the route that receives a whole cluster.
//
// loads holds the weight already given to each route id during the current
// run. Implementations must not modify routes or loads.
type RouteSelectionPolicy interface {
	Name() string
	SelectRoute(routes []domain.Route, loads map[int]float64, cluster Cluster) (domain.Route, bool)
}

const (
	PolicyFirstAvailable = "first-available"
	PolicyLeastLoaded    = "least-loaded"
)

// PolicyByName returns the policy registered under name. An empty name
// selects FirstAvailable.
func PolicyByName(name string, defaultCapacity float64) (RouteSelectionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyFirstAvailable:
		return FirstAvailable{}, nil
	case PolicyLeastLoaded:
		return LeastLoaded{DefaultCapacity: defaultCapacity}, nil
	default:
		return nil, fmt.Errorf("unknown route selection policy %q", name)
	}
}

// FirstAvailable always picks the first route, ignoring load and distance.
type FirstAvailable struct{}

func (FirstAvailable) Name() string { return PolicyFirstAvailable }

func (FirstAvailable) SelectRoute(routes []domain.Route, _ map[int]float64, cluster Cluster) (domain.Route, bool) {
	if len(routes) == 0 || len(cluster.Parcels) == 0 {
		return domain.Route{}, false
	}
	return routes[0], true
}

// LeastLoaded picks the route with the lowest load so far among those whose
// capacity still fits the cluster. Ties keep the earlier route.
type LeastLoaded struct {
	DefaultCapacity float64
}

func (LeastLoaded) Name() string { return PolicyLeastLoaded }

func (p LeastLoaded) SelectRoute(routes []domain.Route, loads map[int]float64, cluster Cluster) (domain.Route, bool) {
	if len(cluster.Parcels) == 0 {
		return domain.Route{}, false
	}

	var (
		best  domain.Route
		found bool
	)
	for _, r := range routes {
		load := loads[r.RouteID]
		if load+cluster.Weight > routeCapacity(r, p.DefaultCapacity) {
			continue
		}
		if !found || load < loads[best.RouteID] {
			best, found = r, true
		}
	}
	return best, found
}

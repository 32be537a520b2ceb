package services

import (
	"fmt"
	"route-optimizer-service/internal/domain"
	"time"
)

// Algorithm labels reported on results and stats.
const (
	AlgorithmFloodFill  = "Flood Fill"
	AlgorithmClustering = "Postal Code Clustering"
)

// Outcome classifies a run for callers that do not parse Status.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeError   Outcome = "error"
)

// OptimizationResult is the immutable output of one assignment run.
// Per-route maps are keyed by route display name.
type OptimizationResult struct {
	Algorithm string
	Outcome   Outcome
	Status    string

	RouteAssignments map[string][]domain.Parcel
	RouteLoads       map[string]float64
	RouteUtilization map[string]float64
	RouteDistances   map[string]float64
	// Postal code -> route key; only populated by the clustering run.
	ClusterRoutes map[string]string

	TotalDistance     float64
	Efficiency        float64
	AssignedParcels   int
	UnassignedParcels int
	TotalParcels      int
	ExecutionTimeMs   int64
}

// aggregator accumulates counts and per-route figures while a run progresses
// and turns them into an OptimizationResult.
type aggregator struct {
	res   OptimizationResult
	start time.Time
	clock func() time.Time

	keys  map[int]string // route id -> result key
	owner map[string]int // result key -> route id

	// Greedy runs only; per-route figures are read from it once.
	arena     *routeArena
	collected bool
}

func newAggregator(algorithm string, clock func() time.Time) *aggregator {
	return &aggregator{
		res: OptimizationResult{
			Algorithm:        algorithm,
			Outcome:          OutcomeWarning,
			Status:           "Pending",
			RouteAssignments: map[string][]domain.Parcel{},
			RouteLoads:       map[string]float64{},
			RouteUtilization: map[string]float64{},
			RouteDistances:   map[string]float64{},
			ClusterRoutes:    map[string]string{},
		},
		start: clock(),
		clock: clock,
		keys:  map[int]string{},
		owner: map[string]int{},
	}
}

// key returns the result key of a route, disambiguating repeated names.
func (a *aggregator) key(routeID int, name string) string {
	if k, ok := a.keys[routeID]; ok {
		return k
	}

	k := name
	if id, taken := a.owner[k]; taken && id != routeID {
		k = fmt.Sprintf("%s#%d", name, routeID)
	}
	a.keys[routeID] = k
	a.owner[k] = routeID
	return k
}

func (a *aggregator) total(n int)      { a.res.TotalParcels = n }
func (a *aggregator) assigned(n int)   { a.res.AssignedParcels += n }
func (a *aggregator) unassigned(n int) { a.res.UnassignedParcels += n }

func (a *aggregator) finish() OptimizationResult {
	a.res.ExecutionTimeMs = a.clock().Sub(a.start).Milliseconds()
	return a.res
}

// empty reports a run that had nothing to assign or nowhere to assign it.
// Every fetched parcel is counted unassigned.
func (a *aggregator) empty() OptimizationResult {
	a.res.AssignedParcels = 0
	a.res.UnassignedParcels = a.res.TotalParcels
	a.res.Outcome = OutcomeWarning
	a.res.Status = "No parcels or routes available"
	return a.finish()
}

// track registers the arena of a greedy run so that a failed run can still
// report the parcels placed so far.
func (a *aggregator) track(arena *routeArena) { a.arena = arena }

// failed reports an aborted run. Assignments made so far are kept; parcels
// that were never processed are counted unassigned.
func (a *aggregator) failed(err error) OptimizationResult {
	if a.arena != nil && !a.collected {
		a.res.AssignedParcels = a.collectArena(a.arena)
	}
	if rest := a.res.TotalParcels - a.res.AssignedParcels; rest > a.res.UnassignedParcels {
		a.res.UnassignedParcels = rest
	}
	a.res.Outcome = OutcomeError
	a.res.Status = "Error: " + err.Error()
	return a.finish()
}

// collectArena fills the per-route figures of a greedy run and returns the
// number of parcels placed. Only routes with at least one parcel are listed,
// while efficiency spans every route.
func (a *aggregator) collectArena(arena *routeArena) int {
	a.collected = true

	placed := 0
	for _, s := range arena.order {
		parcels := s.Parcels()
		if len(parcels) == 0 {
			continue
		}
		placed += len(parcels)

		k := a.key(s.RouteID, s.Name)
		dist := s.Distance()
		a.res.RouteAssignments[k] = parcels
		a.res.RouteLoads[k] = s.Load()
		a.res.RouteUtilization[k] = s.UtilizationPercent()
		a.res.RouteDistances[k] = dist
		a.res.TotalDistance += dist
	}

	load, capacity := arena.totals()
	if capacity.IsPositive() {
		a.res.Efficiency = clampPercent(load.Div(capacity).InexactFloat64() * 100)
	}
	return placed
}

func (a *aggregator) greedyDone(arena *routeArena) OptimizationResult {
	a.collectArena(arena)
	a.res.Outcome = OutcomeSuccess
	a.res.Status = fmt.Sprintf(
		"Successfully optimized. Assigned: %d/%d parcels | Efficiency: %.2f%%",
		a.res.AssignedParcels, a.res.TotalParcels, a.res.Efficiency,
	)
	return a.finish()
}

// assignCluster records a whole cluster on route without any capacity check.
func (a *aggregator) assignCluster(route domain.Route, c Cluster) {
	k := a.key(route.RouteID, route.Name)
	a.res.RouteAssignments[k] = append(a.res.RouteAssignments[k], c.Parcels...)
	a.res.RouteLoads[k] += c.Weight
	a.res.ClusterRoutes[c.PostalCode] = k
	a.assigned(len(c.Parcels))
}

func (a *aggregator) clusterDone() OptimizationResult {
	if a.res.TotalParcels > 0 {
		a.res.Efficiency = clampPercent(float64(a.res.AssignedParcels) / float64(a.res.TotalParcels) * 100)
	}
	a.res.Outcome = OutcomeSuccess
	a.res.Status = fmt.Sprintf(
		"Clustering optimization complete. Assigned: %d/%d",
		a.res.AssignedParcels, a.res.TotalParcels,
	)
	return a.finish()
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

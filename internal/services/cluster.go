package services

import (
	"context"
	"log"
	"maps"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"slices"

	"github.com/shopspring/decimal"
)

// Cluster is a group of parcels sharing one destination postal code.
type Cluster struct {
	PostalCode string
	Parcels    []domain.Parcel
	Weight     float64
}

// ClusterByPostalCode groups parcels by trimmed destination postal code,
// keeping input order inside each cluster. Parcels without a postal code or
// without a positive finite weight are returned separately.
func ClusterByPostalCode(parcels []domain.Parcel) (map[string]*Cluster, []domain.Parcel) {
	clusters := make(map[string]*Cluster)
	weights := make(map[string]decimal.Decimal)
	var orphans []domain.Parcel

	for _, p := range parcels {
		code := p.PostalCode()
		if code == "" || !p.Assignable() {
			orphans = append(orphans, p)
			continue
		}

		c, ok := clusters[code]
		if !ok {
			c = &Cluster{PostalCode: code}
			clusters[code] = c
		}
		c.Parcels = append(c.Parcels, p)
		weights[code] = weights[code].Add(decimal.NewFromFloat(p.Weight))
	}

	for code, c := range clusters {
		c.Weight = weights[code].InexactFloat64()
	}

	return clusters, orphans
}

// RunClusterAssignment assigns whole postal-code clusters to routes chosen by
// the engine's RouteSelectionPolicy.
//
// This is a coarse grouping view: a cluster's weight is added to its route's
// load without checking capacity, and no distance or utilization is computed.
// Clusters are visited in ascending postal-code order.
func (e *Engine) RunClusterAssignment(ctx context.Context) (res OptimizationResult) {
	var err error
	defer obs.Time(ctx, "optimizer.RunClusterAssignment")(&err)

	agg := newAggregator(AlgorithmClustering, e.opts.Clock)
	defer recoverRun(agg, &res, &err)

	in, err := e.fetchInput(ctx, "cluster assignment")
	agg.total(in.total)
	if err != nil {
		return agg.failed(err)
	}
	agg.unassigned(in.invalid)

	if len(in.parcels) == 0 || len(in.routes) == 0 {
		log.Printf("cluster assignment: no parcels or routes available")
		return agg.empty()
	}

	clusters, orphans := ClusterByPostalCode(in.parcels)
	agg.unassigned(len(orphans))
	log.Printf("cluster assignment: clusters=%d without_postal_code=%d policy=%s",
		len(clusters), len(orphans), e.opts.Policy.Name())

	loads := make(map[int]float64, len(in.routes))
	for _, code := range slices.Sorted(maps.Keys(clusters)) {
		c := clusters[code]

		route, ok := e.opts.Policy.SelectRoute(in.routes, loads, *c)
		if !ok {
			agg.unassigned(len(c.Parcels))
			log.Printf("cluster assignment: no route for postal_code=%s parcels=%d", code, len(c.Parcels))
			continue
		}

		loads[route.RouteID] += c.Weight
		agg.assignCluster(route, *c)
	}

	return agg.clusterDone()
}

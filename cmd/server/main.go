package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/geocode"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
	"time"

	"github.com/redis/go-redis/v9"
)

// sources bundles the parcel and route ports served by one store.
type sources interface {
	ports.ParcelSource
	ports.RouteSource
}

// main is the application composition root.
// It wires concrete adapters (Postgres or memory, geocoder, cache) behind ports
// and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		sqlDB, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()
	}

	store, err := openStore(cfg, sqlDB)
	if err != nil {
		log.Fatal(err)
	}

	jitter := geo.NewJitter(cfg.JitterSeed)
	depot := domain.Coordinates{Lat: cfg.DepotLat, Lon: cfg.DepotLon}

	geocoder, closeCache, err := buildGeocoder(cfg, sqlDB, depot, jitter)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	policy, err := services.PolicyByName(cfg.ClusterPolicy, cfg.DefaultCapacity)
	if err != nil {
		log.Fatal(err)
	}

	engine, err := services.NewEngine(store, store, geocoder, services.Options{
		DefaultCapacity: cfg.DefaultCapacity,
		ScanWorkers:     cfg.ScanWorkers,
		Policy:          policy,
		Positions:       services.JitterPositions(jitter, depot, services.RoutePositionSpread),
	})
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(engine, store, store)

	log.Printf("Server listening addr=:%s geocoder=%s cache=%s policy=%s workers=%d",
		cfg.Port, cfg.Geocoder, cfg.GeocodeCache, policy.Name(), cfg.ScanWorkers)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStore uses Postgres when a connection is available and otherwise an
// in-memory store loaded from the JSON seeds.
func openStore(cfg config.Config, sqlDB *sql.DB) (sources, error) {
	if sqlDB != nil {
		return repositories.NewPostgresRepository(sqlDB), nil
	}

	parcels, err := repositories.LoadParcelSeeds(cfg.ParcelSeedPath)
	if err != nil {
		return nil, fmt.Errorf("open memory store: %w", err)
	}
	routes, err := repositories.LoadRouteSeeds(cfg.RouteSeedPath)
	if err != nil {
		return nil, fmt.Errorf("open memory store: %w", err)
	}

	log.Printf("Using in-memory store parcels=%d routes=%d", len(parcels), len(routes))
	return repositories.NewMemoryRepository(parcels, routes), nil
}

// buildGeocoder picks the geocoding backend and wraps it with the configured
// cache. The returned func releases cache resources.
func buildGeocoder(
	cfg config.Config,
	sqlDB *sql.DB,
	depot domain.Coordinates,
	jitter *geo.Jitter,
) (ports.Geocoder, func(), error) {
	var base ports.Geocoder
	switch cfg.Geocoder {
	case "ors":
		g, err := geocode.NewORSGeocoder(cfg.ORSAPIKey)
		if err != nil {
			return nil, nil, err
		}
		base = g
	default:
		base = geocode.NewJitterGeocoder(depot, geocode.AddressSpread, jitter)
	}

	switch cfg.GeocodeCache {
	case "sql":
		if sqlDB == nil {
			return nil, nil, fmt.Errorf("geocode cache: sql cache needs a database")
		}
		return geocode.NewCachedGeocoder(base, cache.NewSQLGeocodeCache(sqlDB)), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Printf("close redis client: %v", err)
			}
		}
		return geocode.NewCachedGeocoder(base, cache.NewRedisGeocodeCache(client, cfg.RedisTTL)), closeFn, nil
	default:
		return base, func() {}, nil
	}
}

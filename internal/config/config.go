package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the server and dbtool binaries.
type Config struct {
	Port        string
	DatabaseURL string

	ParcelSeedPath string
	RouteSeedPath  string

	DepotLat float64
	DepotLon float64

	DefaultCapacity float64
	ScanWorkers     int
	ClusterPolicy   string
	JitterSeed      uint64

	Geocoder     string // jitter | ors
	ORSAPIKey    string
	GeocodeCache string // none | sql | redis
	RedisAddr    string
	RedisTTL     time.Duration
}

// Get returns the environment value for key, or fallback when it is unset
// or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads a .env file into the environment if one exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:           Get("PORT", "8080"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		ParcelSeedPath: Get("PARCEL_SEED_PATH", "data/seeds/parcels.json"),
		RouteSeedPath:  Get("ROUTE_SEED_PATH", "data/seeds/routes.json"),
		ClusterPolicy:  Get("CLUSTER_POLICY", "first-available"),
		Geocoder:       strings.ToLower(Get("GEOCODER", "jitter")),
		ORSAPIKey:      Get("ORS_API_KEY", ""),
		GeocodeCache:   strings.ToLower(Get("GEOCODE_CACHE", "none")),
		RedisAddr:      Get("REDIS_ADDR", "localhost:6379"),
	}

	var err error
	if cfg.DepotLat, err = getFloat("DEPOT_LAT", 40.7128); err != nil {
		return Config{}, err
	}
	if cfg.DepotLon, err = getFloat("DEPOT_LON", -74.0060); err != nil {
		return Config{}, err
	}
	if cfg.DefaultCapacity, err = getFloat("DEFAULT_CAPACITY", 100); err != nil {
		return Config{}, err
	}
	if cfg.ScanWorkers, err = getInt("SCAN_WORKERS", 1); err != nil {
		return Config{}, err
	}
	if cfg.RedisTTL, err = getDuration("REDIS_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}

	seed, err := strconv.ParseUint(Get("JITTER_SEED", "0"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("config: JITTER_SEED: %w", err)
	}
	cfg.JitterSeed = seed

	if cfg.DefaultCapacity <= 0 {
		return Config{}, fmt.Errorf("config: DEFAULT_CAPACITY must be positive, got %v", cfg.DefaultCapacity)
	}

	switch cfg.Geocoder {
	case "jitter":
	case "ors":
		if cfg.ORSAPIKey == "" {
			return Config{}, fmt.Errorf("config: ORS_API_KEY is required when GEOCODER=ors")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown GEOCODER %q", cfg.Geocoder)
	}

	switch cfg.GeocodeCache {
	case "none", "redis":
	case "sql":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("config: GEOCODE_CACHE=sql requires DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown GEOCODE_CACHE %q", cfg.GeocodeCache)
	}

	// Jitter coordinates are random per process and must not outlive it.
	if cfg.Geocoder == "jitter" && cfg.GeocodeCache != "none" {
		return Config{}, fmt.Errorf("config: GEOCODE_CACHE=%s needs a real geocoder (GEOCODER=ors)", cfg.GeocodeCache)
	}

	return cfg, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
)

func main() {
	config.LoadDotEnv()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	sqlDB, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	parcelPath := config.Get("PARCEL_SEED_PATH", "data/seeds/parcels.json")
	routePath := config.Get("ROUTE_SEED_PATH", "data/seeds/routes.json")
	if err := initAndSeed(ctx, sqlDB, parcelPath, routePath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB, parcelPath, routePath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	parcels, err := repositories.LoadParcelSeeds(parcelPath)
	if err != nil {
		return err
	}
	routes, err := repositories.LoadRouteSeeds(routePath)
	if err != nil {
		return err
	}

	log.Println("Seeding database...")
	if err := repositories.SeedParcels(ctx, sqlDB, parcels); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	if err := repositories.SeedRoutes(ctx, sqlDB, routes); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. parcels=%d routes=%d", len(parcels), len(routes))

	return nil
}

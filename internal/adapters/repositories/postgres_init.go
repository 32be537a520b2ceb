package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
)

// Initialize the Postgres schema used by the repositories and geocode cache.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createParcelsQuery := `
	CREATE TABLE IF NOT EXISTS parcels (
		parcel_id INTEGER PRIMARY KEY,
		tracking_number TEXT,
		weight DOUBLE PRECISION NOT NULL DEFAULT 0,
		destination_address TEXT,
		destination_postal_code TEXT,
		status TEXT
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id INTEGER PRIMARY KEY,
		name TEXT,
		description TEXT,
		postal_code TEXT,
		total_distance DOUBLE PRECISION
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_parcels_destination_postal_code
    ON parcels(destination_postal_code);
	`

	statements := []string{
		createParcelsQuery,
		createRoutesQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert parcels in a single transaction.
func SeedParcels(ctx context.Context, db *sql.DB, parcels []domain.Parcel) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed parcels: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO parcels (
		parcel_id,
		tracking_number,
		weight,
		destination_address,
		destination_postal_code,
		status
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (parcel_id) DO UPDATE
	SET tracking_number = EXCLUDED.tracking_number,
		weight = EXCLUDED.weight,
		destination_address = EXCLUDED.destination_address,
		destination_postal_code = EXCLUDED.destination_postal_code,
		status = EXCLUDED.status;
	`)
	if err != nil {
		return fmt.Errorf("seed parcels: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range parcels {
		_, err := stmt.ExecContext(ctx,
			p.ParcelID,
			nullIfEmpty(p.TrackingNumber),
			p.Weight,
			nullIfEmpty(p.DestinationAddress),
			nullIfEmpty(p.DestinationPostalCode),
			nullIfEmpty(p.Status),
		)
		if err != nil {
			return fmt.Errorf("seed parcels: insert parcel_id=%d: %w", p.ParcelID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed parcels: commit tx: %w", err)
	}

	return nil
}

// Upsert routes in a single transaction. A non-positive distance is stored
// as NULL.
func SeedRoutes(ctx context.Context, db *sql.DB, routes []domain.Route) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed routes: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO routes (
		route_id,
		name,
		description,
		postal_code,
		total_distance
	)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (route_id) DO UPDATE
	SET name = EXCLUDED.name,
		description = EXCLUDED.description,
		postal_code = EXCLUDED.postal_code,
		total_distance = EXCLUDED.total_distance;
	`)
	if err != nil {
		return fmt.Errorf("seed routes: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range routes {
		var dist any
		if r.TotalDistance > 0 {
			dist = r.TotalDistance
		}

		_, err := stmt.ExecContext(ctx,
			r.RouteID,
			nullIfEmpty(r.Name),
			nullIfEmpty(r.Description),
			nullIfEmpty(r.PostalCode),
			dist,
		)
		if err != nil {
			return fmt.Errorf("seed routes: insert route_id=%d: %w", r.RouteID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed routes: commit tx: %w", err)
	}

	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

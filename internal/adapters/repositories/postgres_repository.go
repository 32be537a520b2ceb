package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// Postgres-backed implementation of the ParcelSource and RouteSource ports.
type PostgresRepository struct{ DB *sql.DB }

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// Return all parcels stored in the database.
func (s *PostgresRepository) ListParcels(ctx context.Context) (_ []domain.Parcel, err error) {
	defer obs.Time(ctx, "parcels.List")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres repository: DB is nil")
	}

	query := `
	SELECT
		parcel_id,
		tracking_number,
		weight,
		destination_address,
		destination_postal_code,
		status
	FROM parcels
	ORDER BY parcel_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list parcels: query parcels table: %w", err)
	}
	defer rows.Close()

	parcels := make([]domain.Parcel, 0, 64)
	for rows.Next() {
		var (
			p                               domain.Parcel
			tracking, address, postal, stat sql.NullString
			weight                          sql.NullFloat64
		)
		if err := rows.Scan(&p.ParcelID, &tracking, &weight, &address, &postal, &stat); err != nil {
			return nil, fmt.Errorf("list parcels: scan row: %w", err)
		}
		p.TrackingNumber = tracking.String
		p.Weight = weight.Float64
		p.DestinationAddress = address.String
		p.DestinationPostalCode = postal.String
		p.Status = stat.String
		parcels = append(parcels, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list parcels: row iteration: %w", err)
	}

	return parcels, nil
}

// Return all routes stored in the database. A NULL distance reads as 0.
func (s *PostgresRepository) ListRoutes(ctx context.Context) (_ []domain.Route, err error) {
	defer obs.Time(ctx, "routes.List")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres repository: DB is nil")
	}

	query := `
	SELECT
		route_id,
		name,
		description,
		postal_code,
		total_distance
	FROM routes
	ORDER BY route_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list routes: query routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]domain.Route, 0, 16)
	for rows.Next() {
		var (
			r                  domain.Route
			name, desc, postal sql.NullString
			dist               sql.NullFloat64
		)
		if err := rows.Scan(&r.RouteID, &name, &desc, &postal, &dist); err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		r.Name = name.String
		r.Description = desc.String
		r.PostalCode = postal.String
		r.TotalDistance = dist.Float64
		routes = append(routes, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return routes, nil
}

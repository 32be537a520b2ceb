package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"route-optimizer-service/internal/domain"
	"strings"
)

type ParcelSeed struct {
	ParcelID              int     `json:"parcel_id"`
	TrackingNumber        string  `json:"tracking_number"`
	Weight                float64 `json:"weight"`
	DestinationAddress    string  `json:"destination_address"`
	DestinationPostalCode string  `json:"destination_postal_code"`
	Status                string  `json:"status"`
}

type RouteSeed struct {
	RouteID       int     `json:"route_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PostalCode    string  `json:"postal_code"`
	TotalDistance float64 `json:"total_distance"`
}

// Read parcel seed data from a JSON file.
//
// Weights are not validated here: parcels with a non-positive weight are valid
// stored data that the optimizer skips.
func LoadParcelSeeds(jsonPath string) ([]domain.Parcel, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load parcel seeds: read %q: %w", jsonPath, err)
	}

	var data []ParcelSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load parcel seeds: parse json: %w", err)
	}

	parcels := make([]domain.Parcel, 0, len(data))
	seen := make(map[int]struct{}, len(data))
	for i, item := range data {
		if item.ParcelID <= 0 {
			return nil, fmt.Errorf("load parcel seeds: invalid parcel_id at index %d: %d", i+1, item.ParcelID)
		}
		if _, dup := seen[item.ParcelID]; dup {
			return nil, fmt.Errorf("load parcel seeds: duplicate parcel_id=%d at index %d", item.ParcelID, i+1)
		}
		seen[item.ParcelID] = struct{}{}

		parcels = append(parcels, domain.Parcel{
			ParcelID:              item.ParcelID,
			TrackingNumber:        strings.TrimSpace(item.TrackingNumber),
			Weight:                item.Weight,
			DestinationAddress:    strings.TrimSpace(item.DestinationAddress),
			DestinationPostalCode: strings.TrimSpace(item.DestinationPostalCode),
			Status:                strings.TrimSpace(item.Status),
		})
	}

	return parcels, nil
}

// Read route seed data from a JSON file.
func LoadRouteSeeds(jsonPath string) ([]domain.Route, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load route seeds: read %q: %w", jsonPath, err)
	}

	var data []RouteSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load route seeds: parse json: %w", err)
	}

	routes := make([]domain.Route, 0, len(data))
	seen := make(map[int]struct{}, len(data))
	for i, item := range data {
		if item.RouteID <= 0 {
			return nil, fmt.Errorf("load route seeds: invalid route_id at index %d: %d", i+1, item.RouteID)
		}
		if _, dup := seen[item.RouteID]; dup {
			return nil, fmt.Errorf("load route seeds: duplicate route_id=%d at index %d", item.RouteID, i+1)
		}
		seen[item.RouteID] = struct{}{}

		routes = append(routes, domain.Route{
			RouteID:       item.RouteID,
			Name:          strings.TrimSpace(item.Name),
			Description:   strings.TrimSpace(item.Description),
			PostalCode:    strings.TrimSpace(item.PostalCode),
			TotalDistance: item.TotalDistance,
		})
	}

	return routes, nil
}

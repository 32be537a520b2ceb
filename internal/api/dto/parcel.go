package dto

import "route-optimizer-service/internal/domain"

type ParcelResponse struct {
	ParcelID              int     `json:"parcel_id"`
	TrackingNumber        string  `json:"tracking_number"`
	Weight                float64 `json:"weight"`
	DestinationAddress    string  `json:"destination_address"`
	DestinationPostalCode string  `json:"destination_postal_code"`
	Status                string  `json:"status,omitempty"`
}

type ListParcelsResponse struct {
	Parcels []ParcelResponse `json:"parcels"`
}

func NewParcelResponse(p domain.Parcel) ParcelResponse {
	return ParcelResponse{
		ParcelID:              p.ParcelID,
		TrackingNumber:        p.TrackingNumber,
		Weight:                p.Weight,
		DestinationAddress:    p.DestinationAddress,
		DestinationPostalCode: p.DestinationPostalCode,
		Status:                p.Status,
	}
}

func NewParcelList(parcels []domain.Parcel) []ParcelResponse {
	out := make([]ParcelResponse, 0, len(parcels))
	for _, p := range parcels {
		out = append(out, NewParcelResponse(p))
	}
	return out
}

package handlers

import (
	"log"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// ParcelHandler exposes read-only parcel retrieval.
type ParcelHandler struct {
	Source ports.ParcelSource
}

func (h *ParcelHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	parcels, err := h.Source.ListParcels(r.Context())
	if err != nil {
		log.Printf("req_id=%s list parcels failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListParcelsResponse{Parcels: dto.NewParcelList(parcels)})
}

package handlers

import (
	"log"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// RouteHandler exposes read-only route retrieval.
type RouteHandler struct {
	Source ports.RouteSource
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	routes, err := h.Source.ListRoutes(r.Context())
	if err != nil {
		log.Printf("req_id=%s list routes failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, rt := range routes {
		res.Routes = append(res.Routes, dto.NewRouteResponse(rt))
	}

	writeJSON(w, r, http.StatusOK, res)
}

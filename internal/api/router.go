package api

import (
	"net/http"
	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(engine *services.Engine, parcels ports.ParcelSource, routes ports.RouteSource) http.Handler {
	mux := http.NewServeMux()

	opt := &handlers.OptimizerHandler{Engine: engine}
	parcelHandler := &handlers.ParcelHandler{Source: parcels}
	routeHandler := &handlers.RouteHandler{Source: routes}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/parcels", parcelHandler.List)
	mux.HandleFunc("/routes", routeHandler.List)

	mux.HandleFunc("/api/optimizer/health", opt.Health)
	mux.HandleFunc("/api/optimizer/diagnostics", opt.Diagnostics)
	mux.HandleFunc("/api/optimizer/optimize-routes", opt.OptimizeRoutes)
	mux.HandleFunc("/api/optimizer/optimize-with-clustering", opt.OptimizeWithClustering)
	mux.HandleFunc("/api/optimizer/stats", opt.Stats)

	return requestIDMiddleware(loggingMiddleware(mux))
}

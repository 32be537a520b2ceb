package handlers

import (
	"log"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/services"
	"time"
)

// Version reported by the optimizer health endpoint.
const Version = "2.0"

// OptimizerHandler runs assignments and reports on the stored data.
type OptimizerHandler struct {
	Engine *services.Engine
}

func (h *OptimizerHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizerHealthResponse{
		Status:        "ok",
		Algorithm:     services.AlgorithmFloodFill,
		ClusterPolicy: h.Engine.Policy().Name(),
		Version:       Version,
		Timestamp:     time.Now().UTC(),
	})
}

func (h *OptimizerHandler) OptimizeRoutes(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	res := h.Engine.RunGreedyAssignment(r.Context())
	h.writeResult(w, r, res)
}

func (h *OptimizerHandler) OptimizeWithClustering(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	res := h.Engine.RunClusterAssignment(r.Context())
	h.writeResult(w, r, res)
}

// writeResult answers 500 for failed runs. The body carries the partial
// result either way.
func (h *OptimizerHandler) writeResult(w http.ResponseWriter, r *http.Request, res services.OptimizationResult) {
	status := http.StatusOK
	if res.Outcome == services.OutcomeError {
		status = http.StatusInternalServerError
		log.Printf("req_id=%s optimization failed algorithm=%q status=%q",
			obs.RequestID(r.Context()), res.Algorithm, res.Status)
	}

	writeJSON(w, r, status, dto.NewOptimizationResponse(res))
}

func (h *OptimizerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	st := h.Engine.Stats(r.Context())
	status := http.StatusOK
	if st.Status == services.StatusError {
		status = http.StatusInternalServerError
	}

	writeJSON(w, r, status, dto.NewStatsResponse(st))
}

func (h *OptimizerHandler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewDiagnosticsResponse(h.Engine.Diagnostics(r.Context())))
}

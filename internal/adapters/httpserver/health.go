package httpserver

import (
	"encoding/json"
	"net/http"

	"go.trai.ch/mazerepair/internal/core/domain"
)

type healthHandler struct {
	source HealthSource
}

func (h *healthHandler) health(w http.ResponseWriter, r *http.Request) {
	result := h.source.Check(r.Context())
	writeJSON(w, statusCode(result.Status), result)
}

func (h *healthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	result := h.source.Liveness()
	writeJSON(w, statusCode(result.Status), result)
}

func (h *healthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	result := h.source.Readiness()
	writeJSON(w, statusCode(result.Status), result)
}

// statusCode maps a health status to the HTTP status the actuator uses.
func statusCode(status domain.HealthStatus) int {
	switch status {
	case domain.StatusDown, domain.StatusOutOfService:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

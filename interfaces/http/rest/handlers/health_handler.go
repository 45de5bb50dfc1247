package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"ntlango-api/pkg/utils"
)

// HealthHandler reports process liveness
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// HealthResponse is the healthcheck payload
type HealthResponse struct {
	Uptime    float64 `json:"uptime"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
}

// Healthcheck handles GET /healthcheck
func (h *HealthHandler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Uptime:    time.Since(h.startedAt).Seconds(),
		Message:   "OK",
		Timestamp: utils.NowRFC3339(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

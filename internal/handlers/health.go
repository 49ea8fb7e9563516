package handlers

import (
	"context"
	"net/http"
	"os"
	"time"
)

const version = "0.1.0"

// Check represents the status of a health check.
type Check struct {
	Status  string `json:"status"`            // "pass" or "fail"
	Latency string `json:"latency,omitempty"` // e.g., "2ms"
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string           `json:"status"` // "healthy" or "degraded"
	Version   string           `json:"version"`
	Instance  string           `json:"instance,omitempty"`
	Checks    map[string]Check `json:"checks"`
	Patterns  int              `json:"patterns"`
	Timestamp string           `json:"timestamp"`
}

// Health pings pattern storage. The in-memory registry keeps answering while
// storage is down, so a failed ping reports degraded rather than unhealthy.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]Check)
	allHealthy := true

	// Check pattern storage
	if h.store != nil {
		start := time.Now()
		if err := h.store.Ping(ctx); err != nil {
			checks["storage"] = Check{Status: "fail", Message: "connection failed"}
			allHealthy = false
		} else {
			checks["storage"] = Check{Status: "pass", Latency: time.Since(start).String()}
		}
	} else {
		checks["storage"] = Check{Status: "fail", Message: "not configured"}
		allHealthy = false
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	hostname, _ := os.Hostname()
	resp := HealthResponse{
		Status:    status,
		Version:   version,
		Instance:  hostname,
		Checks:    checks,
		Patterns:  len(h.recognizer.Prefixes()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	h.JSON(w, statusCode, resp)
}

// RootResponse represents the root endpoint response.
type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Nick    string `json:"nick"`
}

// Root handles the root endpoint.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, RootResponse{
		Name:    "ticketbot",
		Version: version,
		Nick:    h.recognizer.Nick(),
	})
}

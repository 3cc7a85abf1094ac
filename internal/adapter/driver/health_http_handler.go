package driver

import (
	"net/http"

	"github.com/alorle/m3u-editor/internal/application"
)

// HealthHTTPHandler handles HTTP requests for health checks.
type HealthHTTPHandler struct {
	service *application.HealthService
}

// NewHealthHTTPHandler creates a new HTTP handler for health checks.
func NewHealthHTTPHandler(service *application.HealthService) *HealthHTTPHandler {
	return &HealthHTTPHandler{service: service}
}

// healthResponse represents the JSON response for health check endpoint.
type healthResponse struct {
	Status      string `json:"status"`
	ExportStore string `json:"export_store"`
}

// ServeHTTP handles GET /health
func (h *HealthHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := h.service.Check(r.Context())

	httpStatus := http.StatusOK
	if status.Status != "ok" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:      status.Status,
		ExportStore: status.ExportStore.Status,
	})
}

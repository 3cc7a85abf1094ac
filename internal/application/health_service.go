package application

import (
	"context"

	"github.com/alorle/m3u-editor/internal/port/driven"
	"github.com/alorle/m3u-editor/metrics"
)

// HealthService orchestrates health checks for the application and its dependencies.
type HealthService struct {
	store driven.ArtifactStore
}

// NewHealthService creates a new health check service.
func NewHealthService(store driven.ArtifactStore) *HealthService {
	return &HealthService{
		store: store,
	}
}

// ComponentHealth represents the health status of a single component.
type ComponentHealth struct {
	Status string // "ok" or "error"
	Error  string // empty if status is "ok", otherwise contains error message
}

// HealthStatus represents the overall health status of the application.
type HealthStatus struct {
	Status      string          // "ok" if all components are healthy, "degraded" otherwise
	ExportStore ComponentHealth // export artifact store health
}

// Check performs health checks on all dependencies.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:      "ok",
		ExportStore: ComponentHealth{Status: "ok"},
	}

	if err := s.store.Ping(ctx); err != nil {
		status.ExportStore = ComponentHealth{
			Status: "error",
			Error:  err.Error(),
		}
		status.Status = "degraded"
		metrics.RecordHealthCheckFailure()
	}

	return status
}

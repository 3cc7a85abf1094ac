package application

import (
	"context"
	"errors"
	"testing"
)

func TestHealthService_Check(t *testing.T) {
	t.Run("all components healthy", func(t *testing.T) {
		service := NewHealthService(&mockArtifactStore{})

		status := service.Check(context.Background())

		if status.Status != "ok" {
			t.Errorf("expected status ok, got %s", status.Status)
		}
		if status.ExportStore.Status != "ok" {
			t.Errorf("expected export store ok, got %s", status.ExportStore.Status)
		}
		if status.ExportStore.Error != "" {
			t.Errorf("expected no error, got %q", status.ExportStore.Error)
		}
	})

	t.Run("export store unavailable", func(t *testing.T) {
		store := &mockArtifactStore{
			pingFunc: func(ctx context.Context) error {
				return errors.New("export directory not writable")
			},
		}
		service := NewHealthService(store)

		status := service.Check(context.Background())

		if status.Status != "degraded" {
			t.Errorf("expected status degraded, got %s", status.Status)
		}
		if status.ExportStore.Status != "error" {
			t.Errorf("expected export store error, got %s", status.ExportStore.Status)
		}
		if status.ExportStore.Error != "export directory not writable" {
			t.Errorf("unexpected error message %q", status.ExportStore.Error)
		}
	})
}

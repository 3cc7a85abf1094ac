package driven

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	port "github.com/alorle/m3u-editor/internal/port/driven"
)

const (
	artifactPrefix = "export-"
	artifactSuffix = ".m3u"
)

// TempFileStore implements the ArtifactStore port on the local file system.
type TempFileStore struct {
	dir string
}

// NewTempFileStore creates a store writing into dir.
// An empty dir selects the operating system temp directory.
// It ensures the directory exists before returning.
func NewTempFileStore(dir string) (*TempFileStore, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	return &TempFileStore{dir: dir}, nil
}

// Dir returns the directory artifacts are written to.
func (s *TempFileStore) Dir() string {
	return s.dir
}

// Write stores content in a new file named export-<uuid>.m3u.
func (s *TempFileStore) Write(ctx context.Context, content []byte) (port.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return port.Artifact{}, err
	}

	name := artifactPrefix + uuid.NewString() + artifactSuffix
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return port.Artifact{}, fmt.Errorf("failed to create export file: %w", err)
	}

	n, err := f.Write(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return port.Artifact{}, fmt.Errorf("failed to write export file: %w", err)
	}

	return port.Artifact{Name: name, Path: path, Size: int64(n)}, nil
}

// Open opens the artifact file for reading.
func (s *TempFileStore) Open(_ context.Context, a port.Artifact) (io.ReadSeekCloser, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, port.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	return f, nil
}

// Remove deletes the artifact file.
func (s *TempFileStore) Remove(_ context.Context, a port.Artifact) error {
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove export file: %w", err)
	}
	return nil
}

// Ping verifies the directory accepts new files.
func (s *TempFileStore) Ping(_ context.Context) error {
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("export directory not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

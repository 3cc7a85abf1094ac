package driven

import (
	"context"
	"errors"
	"io"
)

// ErrArtifactNotFound is returned when an artifact no longer exists in the store.
var ErrArtifactNotFound = errors.New("artifact not found")

// Artifact identifies one exported playlist file held by an ArtifactStore.
type Artifact struct {
	Name string
	Path string
	Size int64
}

// ArtifactStore defines the interface for short-lived export file storage.
// This is a driven port that will be implemented by concrete adapters (e.g., a temp directory).
// Each export writes exactly one artifact, which the caller removes once it has been served.
type ArtifactStore interface {
	// Write stores content under a new unique name.
	Write(ctx context.Context, content []byte) (Artifact, error)

	// Open returns a reader over the artifact content. Returns ErrArtifactNotFound
	// if the artifact has already been removed.
	Open(ctx context.Context, a Artifact) (io.ReadSeekCloser, error)

	// Remove deletes the artifact. Removing an artifact twice is not an error.
	Remove(ctx context.Context, a Artifact) error

	// Ping checks if the store is accessible and writable.
	// Returns nil if healthy, otherwise returns an error describing the issue.
	Ping(ctx context.Context) error
}

package driven

import (
	port "github.com/alorle/m3u-editor/internal/port/driven"
)

// Compile-time check that TempFileStore implements ArtifactStore interface
var _ port.ArtifactStore = (*TempFileStore)(nil)

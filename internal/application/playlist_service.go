package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alorle/m3u-editor/internal/playlist"
	"github.com/alorle/m3u-editor/internal/port/driven"
	"github.com/alorle/m3u-editor/metrics"
)

// ParseResult is the outcome of parsing one uploaded playlist.
type ParseResult struct {
	Channels []playlist.Channel
	Groups   []string
	Total    int
}

// PlaylistService provides use cases for parsing and exporting playlists.
// It depends only on port interfaces.
type PlaylistService struct {
	store  driven.ArtifactStore
	logger *slog.Logger
}

// NewPlaylistService creates a new PlaylistService spooling exports to store.
func NewPlaylistService(store driven.ArtifactStore, logger *slog.Logger) *PlaylistService {
	return &PlaylistService{
		store:  store,
		logger: logger,
	}
}

// Parse decodes raw and returns the channels matching f.
// Groups and Total always describe the unfiltered playlist.
// Returns an error wrapping playlist.ErrDecode if raw is not valid text.
func (s *PlaylistService) Parse(ctx context.Context, raw []byte, f playlist.Filter) (ParseResult, error) {
	content, err := playlist.Decode(raw)
	if err != nil {
		metrics.RecordParse(metrics.ResultDecodeError, len(raw), 0)
		s.logger.WarnContext(ctx, "rejected playlist upload", "bytes", len(raw), "error", err)
		return ParseResult{}, fmt.Errorf("failed to decode playlist: %w", err)
	}

	channels := playlist.Parse(content)
	result := ParseResult{
		Channels: f.Apply(channels),
		Groups:   playlist.Groups(channels),
		Total:    len(channels),
	}

	metrics.RecordParse(metrics.ResultOK, len(raw), len(channels))
	s.logger.DebugContext(ctx, "parsed playlist",
		"bytes", len(raw),
		"channels", result.Total,
		"matched", len(result.Channels),
		"groups", len(result.Groups))

	return result, nil
}

// Export builds the playlist containing the selected channels of req.
func (s *PlaylistService) Export(ctx context.Context, req playlist.ExportRequest) (string, error) {
	if _, err := playlist.Decode([]byte(req.OriginalContent)); err != nil {
		metrics.RecordExport(metrics.ResultDecodeError, 0, 0)
		return "", fmt.Errorf("failed to decode original content: %w", err)
	}

	out := playlist.Export(req)
	modified := req.ModifiedCount()

	metrics.RecordExport(metrics.ResultOK, len(req.Indices), modified)
	s.logger.DebugContext(ctx, "exported playlist",
		"selected", len(req.Indices),
		"modified", modified,
		"bytes", len(out))

	return out, nil
}

// ExportArtifact exports req and writes the result to the artifact store.
// The caller is responsible for removing the returned artifact.
func (s *PlaylistService) ExportArtifact(ctx context.Context, req playlist.ExportRequest) (driven.Artifact, error) {
	out, err := s.Export(ctx, req)
	if err != nil {
		return driven.Artifact{}, err
	}

	artifact, err := s.store.Write(ctx, []byte(out))
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			metrics.RecordExport(metrics.ResultError, 0, 0)
		}
		s.logger.ErrorContext(ctx, "failed to store export", "error", err)
		return driven.Artifact{}, fmt.Errorf("failed to store export: %w", err)
	}

	return artifact, nil
}

// OpenArtifact opens a previously stored export for reading.
func (s *PlaylistService) OpenArtifact(ctx context.Context, a driven.Artifact) (io.ReadSeekCloser, error) {
	return s.store.Open(ctx, a)
}

// RemoveArtifact deletes a stored export. Failures are logged, not returned.
func (s *PlaylistService) RemoveArtifact(ctx context.Context, a driven.Artifact) {
	if err := s.store.Remove(ctx, a); err != nil {
		s.logger.WarnContext(ctx, "failed to remove export artifact", "artifact", a.Name, "error", err)
	}
}

package driver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/alorle/m3u-editor/internal/application"
	"github.com/alorle/m3u-editor/internal/playlist"
	"github.com/alorle/m3u-editor/internal/streaming"
)

const (
	// DefaultExportFilename is the download name used when none is configured.
	DefaultExportFilename = "selected_channels.m3u"

	exportContentType = "application/x-mpegurl"
	uploadField       = "file"
)

var errMissingFile = errors.New("missing playlist file")

// PlaylistHTTPHandler handles HTTP requests for parsing and exporting playlists.
type PlaylistHTTPHandler struct {
	service         *application.PlaylistService
	logger          *slog.Logger
	defaultFilename string
	writeTimeout    time.Duration
}

// NewPlaylistHTTPHandler creates a new HTTP handler for playlists.
// writeTimeout bounds each write of an export download.
func NewPlaylistHTTPHandler(service *application.PlaylistService, logger *slog.Logger, defaultFilename string, writeTimeout time.Duration) *PlaylistHTTPHandler {
	if defaultFilename == "" {
		defaultFilename = DefaultExportFilename
	}
	return &PlaylistHTTPHandler{
		service:         service,
		logger:          logger,
		defaultFilename: DownloadFilename(defaultFilename, DefaultExportFilename),
		writeTimeout:    writeTimeout,
	}
}

// parseResponse represents the JSON response of a parse request.
type parseResponse struct {
	Channels []playlist.Channel `json:"channels"`
	Groups   []string           `json:"groups"`
	Total    int                `json:"total"`
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *PlaylistHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch strings.TrimSuffix(r.URL.Path, "/") {
	case "/parse":
		h.handleParse(w, r)
	case "/export":
		h.handleExport(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// handleParse handles POST /parse
func (h *PlaylistHTTPHandler) handleParse(w http.ResponseWriter, r *http.Request) {
	var filter playlist.Filter
	query := r.URL.Query()
	for name, dest := range map[string]*string{
		"name":   &filter.Name,
		"group":  &filter.Group,
		"tvg_id": &filter.TvgID,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			writeError(w, http.StatusBadRequest, "invalid query parameter "+name)
			return
		}
	}

	raw, err := readUpload(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, tooLargeMessage(maxErr.Limit))
		case errors.Is(err, errMissingFile):
			writeError(w, http.StatusBadRequest, "missing playlist file")
		default:
			writeError(w, http.StatusBadRequest, "invalid upload")
		}
		return
	}

	result, err := h.service.Parse(r.Context(), raw, filter)
	if err != nil {
		if errors.Is(err, playlist.ErrDecode) {
			writeError(w, http.StatusBadRequest, "could not decode file as UTF-8 text")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to parse playlist", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, parseResponse{
		Channels: result.Channels,
		Groups:   result.Groups,
		Total:    result.Total,
	})
}

// readUpload returns the playlist bytes from a multipart "file" part or,
// for any other content type, from the raw body.
func readUpload(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return io.ReadAll(r.Body)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errMissingFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() != uploadField {
			_ = part.Close()
			continue
		}
		data, err := io.ReadAll(part)
		_ = part.Close()
		return data, err
	}
}

// handleExport handles POST /export
func (h *PlaylistHTTPHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	var requested string
	if err := runtime.BindQueryParameter("form", true, false, "filename", r.URL.Query(), &requested); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query parameter filename")
		return
	}
	filename := DownloadFilename(requested, h.defaultFilename)

	var req playlist.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, tooLargeMessage(maxErr.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	artifact, err := h.service.ExportArtifact(ctx, req)
	if err != nil {
		if errors.Is(err, playlist.ErrDecode) {
			writeError(w, http.StatusBadRequest, "could not decode original content as UTF-8 text")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer h.service.RemoveArtifact(context.WithoutCancel(ctx), artifact)

	f, err := h.service.OpenArtifact(ctx, artifact)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to open export artifact", "artifact", artifact.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", exportContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.FormatInt(artifact.Size, 10))
	w.WriteHeader(http.StatusOK)

	tw := streaming.NewTimeoutWriter(w, h.writeTimeout, h.logger,
		"request_id", RequestIDFromContext(ctx),
		"filename", filename)
	if _, err := io.Copy(tw, f); err != nil {
		h.logger.WarnContext(ctx, "export download interrupted",
			"filename", filename,
			"bytes_written", tw.BytesWritten(),
			"error", err)
	}
}

// DownloadFilename returns the attachment name for requested, falling back
// to def when requested is empty. Directory components are dropped and
// ".m3u" is appended unless the name already ends with it.
func DownloadFilename(requested, def string) string {
	name := strings.TrimSpace(requested)
	name = name[strings.LastIndexAny(name, `/\`)+1:]
	if name == "" || name == "." || name == ".." {
		name = def
	}
	if !strings.HasSuffix(strings.ToLower(name), ".m3u") {
		name += ".m3u"
	}
	return name
}

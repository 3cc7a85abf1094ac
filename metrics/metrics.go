package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values
const (
	ResultOK          = "ok"
	ResultDecodeError = "decode_error"
	ResultError       = "error"
)

var (
	// ParseRequests counts parse calls by result
	ParseRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "m3u_editor_parse_requests_total",
		Help: "Total number of playlist parse requests",
	}, []string{"result"})

	// ChannelsParsed counts channels returned by the parser
	ChannelsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "m3u_editor_channels_parsed_total",
		Help: "Total number of channels extracted from uploaded playlists",
	})

	// PlaylistBytes observes the size of uploaded playlists
	PlaylistBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "m3u_editor_playlist_bytes",
		Help:    "Size of uploaded playlists in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})

	// ExportRequests counts export calls by result
	ExportRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "m3u_editor_export_requests_total",
		Help: "Total number of playlist export requests",
	}, []string{"result"})

	// ChannelsExported counts channel indices requested for export
	ChannelsExported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "m3u_editor_channels_exported_total",
		Help: "Total number of channels selected for export",
	})

	// ChannelsModified counts selected channels exported with an override
	ChannelsModified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "m3u_editor_channels_modified_total",
		Help: "Total number of exported channels rewritten from an override",
	})

	// HealthCheckFailures tracks health check failures
	HealthCheckFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "m3u_editor_health_check_failures_total",
		Help: "Total number of health check failures",
	})
)

// RecordParse records the outcome of a parse request
func RecordParse(result string, size, channels int) {
	ParseRequests.WithLabelValues(result).Inc()
	PlaylistBytes.Observe(float64(size))
	if result == ResultOK {
		ChannelsParsed.Add(float64(channels))
	}
}

// RecordExport records the outcome of an export request
func RecordExport(result string, selected, modified int) {
	ExportRequests.WithLabelValues(result).Inc()
	if result == ResultOK {
		ChannelsExported.Add(float64(selected))
		ChannelsModified.Add(float64(modified))
	}
}

// RecordHealthCheckFailure increments the health check failure counter
func RecordHealthCheckFailure() {
	HealthCheckFailures.Inc()
}

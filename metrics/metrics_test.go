package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsEndpoint(t *testing.T) {
	// Vector metrics only appear once a label set has been used
	RecordParse(ResultOK, 0, 0)
	RecordExport(ResultOK, 0, 0)
	RecordHealthCheckFailure()

	server := httptest.NewServer(promhttp.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("Failed to get metrics: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("failed to close response body: %v", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	output := string(body)

	expectedMetrics := []string{
		"m3u_editor_parse_requests_total",
		"m3u_editor_channels_parsed_total",
		"m3u_editor_playlist_bytes",
		"m3u_editor_export_requests_total",
		"m3u_editor_channels_exported_total",
		"m3u_editor_channels_modified_total",
		"m3u_editor_health_check_failures_total",
	}
	for _, metric := range expectedMetrics {
		if !strings.Contains(output, metric) {
			t.Errorf("Expected metric %s not found in output", metric)
		}
	}
}

func TestRecordParse(t *testing.T) {
	okBefore := testutil.ToFloat64(ParseRequests.WithLabelValues(ResultOK))
	decodeBefore := testutil.ToFloat64(ParseRequests.WithLabelValues(ResultDecodeError))
	channelsBefore := testutil.ToFloat64(ChannelsParsed)

	RecordParse(ResultOK, 2048, 12)
	RecordParse(ResultDecodeError, 10, 0)

	if got := testutil.ToFloat64(ParseRequests.WithLabelValues(ResultOK)) - okBefore; got != 1 {
		t.Errorf("ok parse requests delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ParseRequests.WithLabelValues(ResultDecodeError)) - decodeBefore; got != 1 {
		t.Errorf("decode error parse requests delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ChannelsParsed) - channelsBefore; got != 12 {
		t.Errorf("channels parsed delta = %v, want 12", got)
	}
}

func TestRecordExport(t *testing.T) {
	exportedBefore := testutil.ToFloat64(ChannelsExported)
	modifiedBefore := testutil.ToFloat64(ChannelsModified)
	errorsBefore := testutil.ToFloat64(ExportRequests.WithLabelValues(ResultError))

	RecordExport(ResultOK, 5, 2)
	RecordExport(ResultError, 7, 7)

	if got := testutil.ToFloat64(ChannelsExported) - exportedBefore; got != 5 {
		t.Errorf("channels exported delta = %v, want 5", got)
	}
	if got := testutil.ToFloat64(ChannelsModified) - modifiedBefore; got != 2 {
		t.Errorf("channels modified delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(ExportRequests.WithLabelValues(ResultError)) - errorsBefore; got != 1 {
		t.Errorf("export errors delta = %v, want 1", got)
	}
}

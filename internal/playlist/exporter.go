package playlist

import "strings"

// ExportRequest carries a client selection back to the exporter.
type ExportRequest struct {
	Indices          []int           `json:"indices"`
	OriginalContent  string          `json:"original_content"`
	ModifiedChannels map[int]Channel `json:"modified_channels,omitempty"`
}

// Export rebuilds an M3U document holding only the selected entries of
// req.OriginalContent, in file order.
//
// Every #EXTINF line advances the entry counter, paired or not. A selected
// entry is written as its trimmed directive line followed by the next line,
// trimmed, without checking that it is a URL. When the entry has an override
// in ModifiedChannels the directive is rebuilt and only the override's TvgID
// is applied. Indices that match no directive select nothing.
func Export(req ExportRequest) string {
	selected := make(map[int]struct{}, len(req.Indices))
	for _, i := range req.Indices {
		selected[i] = struct{}{}
	}

	lines := strings.Split(req.OriginalContent, "\n")
	out := []string{header}
	current := 0

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if !isDirective(line) {
			continue
		}

		if _, ok := selected[current]; ok {
			if override, ok := req.ModifiedChannels[current]; ok {
				out = append(out, rebuildDirective(line, override.TvgID))
			} else {
				out = append(out, line)
			}
			if i+1 < len(lines) {
				out = append(out, strings.TrimSpace(lines[i+1]))
			}
		}
		current++
	}

	return strings.Join(out, "\n")
}

// ModifiedCount returns how many selected entries carry an override.
func (r ExportRequest) ModifiedCount() int {
	n := 0
	seen := make(map[int]struct{}, len(r.Indices))
	for _, i := range r.Indices {
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		if _, ok := r.ModifiedChannels[i]; ok {
			n++
		}
	}
	return n
}

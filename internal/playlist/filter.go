package playlist

import "strings"

// Filter narrows a channel list the way the editor's table filters do.
// Empty fields match everything.
type Filter struct {
	Name  string // case-insensitive substring of Channel.Name
	Group string // exact Channel.Group
	TvgID string // case-insensitive substring of Channel.TvgID
}

// IsZero reports whether the filter matches every channel.
func (f Filter) IsZero() bool {
	return f.Name == "" && f.Group == "" && f.TvgID == ""
}

// Match reports whether ch satisfies every non-empty field of f.
func (f Filter) Match(ch Channel) bool {
	if f.Name != "" && !containsFold(ch.Name, f.Name) {
		return false
	}
	if f.Group != "" && ch.Group != f.Group {
		return false
	}
	if f.TvgID != "" && !containsFold(ch.TvgID, f.TvgID) {
		return false
	}
	return true
}

// Apply returns the channels matching f. Indices are kept as parsed.
func (f Filter) Apply(channels []Channel) []Channel {
	if f.IsZero() {
		return channels
	}
	out := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		if f.Match(ch) {
			out = append(out, ch)
		}
	}
	return out
}

// Groups returns the distinct non-empty groups in first-seen order.
func Groups(channels []Channel) []string {
	groups := []string{}
	seen := make(map[string]struct{})
	for _, ch := range channels {
		if ch.Group == "" {
			continue
		}
		if _, ok := seen[ch.Group]; ok {
			continue
		}
		seen[ch.Group] = struct{}{}
		groups = append(groups, ch.Group)
	}
	return groups
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

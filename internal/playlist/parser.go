package playlist

import "strings"

// Parse extracts channels from M3U text in file order.
//
// Blank lines are skipped and never separate a directive from its URL.
// A directive that is not followed by an http line before the next
// directive, or before the end of input, is dropped without consuming an
// index. Parse never fails on malformed structure.
func Parse(content string) []Channel {
	channels := []Channel{}
	var pending *Channel

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case isDirective(line):
			pending = newChannel(line)
		case strings.HasPrefix(line, urlPrefix):
			if pending == nil {
				continue
			}
			pending.URL = line
			pending.Index = len(channels)
			channels = append(channels, *pending)
			pending = nil
		}
	}

	return channels
}

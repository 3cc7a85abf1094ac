package playlist

import (
	"regexp"
	"strings"
)

const (
	directivePrefix = "#EXTINF:"
	urlPrefix       = "http"
	header          = "#EXTM3U"
)

var (
	tvgIDRegex      = regexp.MustCompile(`tvg-id="([^"]*)"`)
	tvgNameRegex    = regexp.MustCompile(`tvg-name="([^"]*)"`)
	tvgLogoRegex    = regexp.MustCompile(`tvg-logo="([^"]*)"`)
	groupTitleRegex = regexp.MustCompile(`group-title="([^"]*)"`)
)

// isDirective reports whether a trimmed line is an #EXTINF directive.
func isDirective(line string) bool {
	return strings.HasPrefix(line, directivePrefix)
}

// attribute returns the first value matched by re in line and whether it matched.
func attribute(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func attributeValue(re *regexp.Regexp, line string) string {
	v, _ := attribute(re, line)
	return v
}

// displayName returns the text after the last comma of a directive line.
func displayName(line string) string {
	i := strings.LastIndex(line, ",")
	if i == -1 {
		return ""
	}
	return line[i+1:]
}

// newChannel builds a pending channel from a trimmed directive line.
func newChannel(line string) *Channel {
	return &Channel{
		Name:    displayName(line),
		Group:   attributeValue(groupTitleRegex, line),
		TvgID:   attributeValue(tvgIDRegex, line),
		TvgName: attributeValue(tvgNameRegex, line),
		TvgLogo: attributeValue(tvgLogoRegex, line),
		RawInfo: line,
	}
}

// rebuildDirective regenerates a directive line with tvgID replacing the
// source tvg-id. tvg-name, tvg-logo and group-title are copied from the
// source line in that fixed order, and only when present there.
func rebuildDirective(line, tvgID string) string {
	attrs := make([]string, 0, 3)
	for _, a := range []struct {
		key string
		re  *regexp.Regexp
	}{
		{"tvg-name", tvgNameRegex},
		{"tvg-logo", tvgLogoRegex},
		{"group-title", groupTitleRegex},
	} {
		if v, ok := attribute(a.re, line); ok {
			attrs = append(attrs, a.key+`="`+v+`"`)
		}
	}

	var b strings.Builder
	b.WriteString("#EXTINF:-1 ")
	b.WriteString(strings.Join(attrs, " "))
	b.WriteString(` tvg-id="`)
	b.WriteString(tvgID)
	b.WriteString(`",`)
	b.WriteString(displayName(line))
	return b.String()
}

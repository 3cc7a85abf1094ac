// Package playlist parses extended M3U playlists into channel records and
// exports a selected subset of them back into M3U text.
package playlist

import (
	"errors"
	"unicode/utf8"
)

// ErrDecode is returned when playlist bytes are not valid UTF-8 text.
var ErrDecode = errors.New("playlist content is not valid utf-8 text")

// Channel is one playable entry of a playlist.
type Channel struct {
	Name    string `json:"name"`
	Group   string `json:"group"`
	TvgID   string `json:"tvg_id"`
	TvgName string `json:"tvg_name"`
	TvgLogo string `json:"tvg_logo"`
	URL     string `json:"url"`
	// RawInfo is the trimmed #EXTINF line the channel was parsed from.
	RawInfo string `json:"raw_info"`
	// Index is the position among successfully parsed channels, not among lines.
	Index int `json:"index"`
}

// Decode converts raw uploaded bytes to playlist text.
// Returns ErrDecode if raw is not valid UTF-8.
func Decode(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrDecode
	}
	return string(raw), nil
}

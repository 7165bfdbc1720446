// Package youtube normalises video references to YouTube video ids.
package youtube

import (
	"errors"
	"regexp"
	"strings"
)

// IDLength is the length of a YouTube video id
const IDLength = 11

// ErrInvalidVideoReference is returned when no video id can be extracted
var ErrInvalidVideoReference = errors.New("invalid YouTube video reference")

var (
	urlPattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|shorts/|watch\?v=|&v=)([^#&?/]*).*`)
	idPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ExtractVideoID returns the video id from a YouTube URL or a bare id
func ExtractVideoID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrInvalidVideoReference
	}

	if idPattern.MatchString(ref) {
		return ref, nil
	}

	m := urlPattern.FindStringSubmatch(ref)
	if m == nil || len(m[2]) != IDLength || !idPattern.MatchString(m[2]) {
		return "", ErrInvalidVideoReference
	}
	return m[2], nil
}

// EmbedURL returns the embeddable player URL for a video id
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

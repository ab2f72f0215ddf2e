package report

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// reservedChars matches characters that are unsafe in file or directory
// names on at least one supported filesystem.
var reservedChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// sanitizeSegment replaces filesystem-reserved characters with underscores.
func sanitizeSegment(segment string) string {
	return reservedChars.ReplaceAllString(segment, "_")
}

// PagePath computes the destination file for a page URL:
//
//	<outputDir>/<host>/<path-segments...>[_<fragment>].md
//
// The host is the first component so that pages from the same site stay
// under one directory tree. Empty path segments are dropped, every segment
// is sanitized, and a URL with no path uses the host itself as the
// filename. A fragment is appended to the final segment with an underscore
// so that two URLs differing only by fragment never share a file.
//
// Examples:
//
//	https://docs.example.com/stream/upgrading        -> <out>/docs.example.com/stream/upgrading.md
//	https://docs.example.com/stream/deploy#pricing   -> <out>/docs.example.com/stream/deploy_pricing.md
//	https://docs.example.com/                        -> <out>/docs.example.com/docs.example.com.md
func PagePath(outputDir, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("cannot name output file: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("cannot name output file for URL without host: %q", rawURL)
	}

	host := sanitizeSegment(u.Host)

	segments := make([]string, 0)
	for _, segment := range strings.Split(u.Path, "/") {
		if segment == "" {
			continue
		}
		segments = append(segments, sanitizeSegment(segment))
	}

	var dir, name string
	if len(segments) == 0 {
		dir = filepath.Join(outputDir, host)
		name = host
	} else {
		parts := append([]string{outputDir, host}, segments[:len(segments)-1]...)
		dir = filepath.Join(parts...)
		name = segments[len(segments)-1]
	}

	if u.Fragment != "" {
		name = name + "_" + sanitizeSegment(u.Fragment)
	}

	return filepath.Join(dir, name+".md"), nil
}

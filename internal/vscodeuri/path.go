package vscodeuri

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

var drivePrefix = regexp.MustCompile(`^[A-Za-z]:`)

// LocalPath converts the path of a Local classification back into a
// filesystem path. Drive-letter paths keep their drive; anything else gets
// back the leading "/" the file:/// prefix consumed.
func LocalPath(path string) string {
	if drivePrefix.MatchString(path) {
		return filepath.FromSlash(path)
	}
	return filepath.FromSlash("/" + strings.TrimLeft(path, "/"))
}

// FromPath turns user input into a URI the classifier understands.
// Remote URIs and file URIs are returned as given; filesystem paths are made
// absolute and converted to file URIs.
func FromPath(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty path")
	}
	if c, ok := Classify(s); ok && c.Kind != Local {
		return s, nil
	}
	if strings.HasPrefix(s, "file://") {
		return s, nil
	}
	if strings.Contains(s, "://") {
		return "", fmt.Errorf("unsupported workspace URI %q", s)
	}

	var p string
	if drivePrefix.MatchString(s) {
		p = "/" + strings.ReplaceAll(s, `\`, "/")
	} else {
		abs, err := filepath.Abs(s)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", s, err)
		}
		p = filepath.ToSlash(abs)
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String(), nil
}

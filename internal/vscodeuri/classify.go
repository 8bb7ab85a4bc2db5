// Package vscodeuri classifies the URIs the editor records for opened
// folders and workspaces into location kinds.
package vscodeuri

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind is where a workspace lives.
type Kind int

const (
	Local Kind = iota + 1
	Codespaces
	RemoteWSL
	RemoteSSH
	RemoteContainers
	DevContainer
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case Local:
		return "Local"
	case Codespaces:
		return "Codespaces"
	case RemoteWSL:
		return "WSL"
	case RemoteSSH:
		return "SSH"
	case RemoteContainers:
		return "Container"
	case DevContainer:
		return "Dev Container"
	default:
		return ""
	}
}

// MarshalText encodes the kind by its display name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Classification is the structured form of a recognized URI.
type Classification struct {
	Kind Kind
	// Machine is the remote host or WSL distro. Empty for kinds that do not
	// carry a meaningful machine name.
	Machine string
	// Path is the decoded path component.
	Path string
}

type rule struct {
	kind        Kind
	pattern     *regexp.Regexp
	keepMachine bool
}

// rules are evaluated top to bottom; the first match wins. Remote patterns
// require a non-empty authority followed by a path starting with "/".
var rules = []rule{
	{Local, regexp.MustCompile(`^file:///(.+)$`), false},
	{RemoteSSH, regexp.MustCompile(`^vscode-remote://ssh-remote\+([^/]+)(/.*)$`), true},
	{RemoteWSL, regexp.MustCompile(`^vscode-remote://wsl\+([^/]+)(/.*)$`), true},
	{Codespaces, regexp.MustCompile(`^vscode-remote://vsonline\+([^/]+)(/.*)$`), false},
	{DevContainer, regexp.MustCompile(`^vscode-remote://dev-container\+([^/]+)(/.*)$`), false},
	{RemoteContainers, regexp.MustCompile(`^vscode-remote://attached-container\+([^/]+)(/.*)$`), false},
}

// Classify percent-decodes uri and matches it against the known forms.
// It returns false when uri is not a workspace location.
func Classify(uri string) (Classification, bool) {
	decoded := Unescape(uri)
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(decoded)
		if m == nil {
			continue
		}
		if len(m) == 2 {
			return Classification{Kind: r.kind, Path: m[1]}, true
		}
		c := Classification{Kind: r.kind, Path: m[2]}
		if r.keepMachine {
			c.Machine = m[1]
		}
		return c, true
	}
	return Classification{}, false
}

// Unescape percent-decodes s. Invalid escapes leave s unchanged.
func Unescape(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// FolderName returns the leaf name of path. For paths with no leaf (a
// trailing separator or a bare drive like "C:/") it falls back to the
// parent segment with trailing separators and colons removed.
func FolderName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		if leaf := path[i+1:]; leaf != "" {
			return leaf
		}
	} else if path != "" {
		return strings.TrimRight(path, ":")
	}

	trimmed := strings.TrimRight(path, `/\`)
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimRight(trimmed, ":")
}

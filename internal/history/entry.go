// Package history reads the editor's recently-opened lists: the legacy
// storage.json file and the current state.vscdb key-value store.
package history

import (
	"regexp"
	"strings"
)

// EntryKind tells folder references apart from saved workspace files.
type EntryKind int

const (
	EntryFolder EntryKind = iota
	EntryWorkspace
)

// Entry is one recently-opened item.
type Entry struct {
	Kind EntryKind
	// URI is the folder URI, or the workspace config path for EntryWorkspace.
	URI string
	// Label is the normalized display label, empty when none was recorded.
	Label string
}

// IsWorkspaceConfig reports whether the entry points at a .code-workspace file.
func (e Entry) IsWorkspaceConfig() bool {
	return e.Kind == EntryWorkspace
}

var labelHint = regexp.MustCompile(`^(.*?)\s*(\[[^\]]*\])\s*$`)

// NormalizeLabel moves a trailing bracketed location hint to the front:
// "app [SSH: myhost]" becomes "[SSH: myhost] app". Labels without a hint are
// returned unchanged.
func NormalizeLabel(label string) string {
	m := labelHint.FindStringSubmatch(label)
	if m == nil {
		return label
	}
	return strings.TrimSpace(m[2] + " " + strings.TrimSpace(m[1]))
}

package editor

import (
	"path/filepath"
	"strings"
)

// Version identifies an editor build channel.
type Version string

const (
	Stable      Version = "stable"
	Insiders    Version = "insiders"
	Exploration Version = "exploration"
	VSCodium    Version = "vscodium"
	Cursor      Version = "cursor"
)

const (
	legacyStorageFile = "storage.json"
	settingsFile      = "settings.json"
	stateDBFile       = "state.vscdb"
)

// Instance is one installed editor build with its own per-user data directory.
type Instance struct {
	// Version is the build channel tag.
	Version Version `json:"version"`
	// ExecutablePath is the editor launcher (e.g. /usr/bin/code).
	ExecutablePath string `json:"executablePath"`
	// UserDataDir is the per-user data directory (e.g. ~/.config/Code).
	UserDataDir string `json:"userDataDir"`
}

// Equal compares version exactly and both paths case-insensitively.
func (i Instance) Equal(other Instance) bool {
	return i.Version == other.Version &&
		strings.EqualFold(i.ExecutablePath, other.ExecutablePath) &&
		strings.EqualFold(i.UserDataDir, other.UserDataDir)
}

// Key returns a comparable identity consistent with Equal.
func (i Instance) Key() string {
	return string(i.Version) + "\x00" + strings.ToLower(i.ExecutablePath) + "\x00" + strings.ToLower(i.UserDataDir)
}

// LegacyStoragePath is the oldest recently-opened list (storage.json).
func (i Instance) LegacyStoragePath() string {
	return filepath.Join(i.UserDataDir, legacyStorageFile)
}

// StatePath is the SQLite key-value store holding the current recent list.
func (i Instance) StatePath() string {
	return filepath.Join(i.UserDataDir, "User", "globalStorage", stateDBFile)
}

// SettingsPath is the user's settings.json.
func (i Instance) SettingsPath() string {
	return filepath.Join(i.UserDataDir, "User", settingsFile)
}

// Registry is the set of known editor instances. It is populated once and
// never mutated afterwards, so it can be shared between goroutines.
type Registry struct {
	instances []Instance
}

// NewRegistry creates a Registry holding a copy of instances, in order.
func NewRegistry(instances []Instance) *Registry {
	return &Registry{instances: append([]Instance(nil), instances...)}
}

// Instances returns the registered instances in registration order.
func (r *Registry) Instances() []Instance {
	return append([]Instance(nil), r.instances...)
}

// Len returns the number of registered instances.
func (r *Registry) Len() int {
	return len(r.instances)
}

// Default returns the instance pinned URIs are attributed to: the first
// stable instance, or the first instance of any channel.
func (r *Registry) Default() (Instance, bool) {
	if inst, ok := r.Find(Stable); ok {
		return inst, true
	}
	if len(r.instances) == 0 {
		return Instance{}, false
	}
	return r.instances[0], true
}

// Find returns the first instance of the given version.
func (r *Registry) Find(version Version) (Instance, bool) {
	for _, inst := range r.instances {
		if inst.Version == version {
			return inst, true
		}
	}
	return Instance{}, false
}

package editor

import (
	"os"
	"os/exec"
	"path/filepath"
)

// channel describes where a build channel keeps its data and how it is launched.
type channel struct {
	version Version
	dataDir string // directory name under the platform's config root
	command string // launcher name looked up on PATH
}

// channels is in preference order; Stable comes first so it becomes the default.
var channels = []channel{
	{Stable, "Code", "code"},
	{Insiders, "Code - Insiders", "code-insiders"},
	{Exploration, "Code - Exploration", "code-exploration"},
	{VSCodium, "VSCodium", "codium"},
	{Cursor, "Cursor", "cursor"},
}

// Detector finds installed editor instances by probing well-known data
// directories. Fields are injectable for tests.
type Detector struct {
	GOOS     string
	HomeDir  string
	Getenv   func(string) string
	LookPath func(string) (string, error)
}

// NewDetector creates a Detector for the running platform.
func NewDetector(goos string) (*Detector, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Detector{
		GOOS:     goos,
		HomeDir:  home,
		Getenv:   os.Getenv,
		LookPath: exec.LookPath,
	}, nil
}

// Detect returns every channel whose data directory exists. When the
// launcher is not on PATH the bare command name is used.
func (d *Detector) Detect() []Instance {
	root := d.configRoot()
	if root == "" {
		return nil
	}

	var found []Instance
	for _, ch := range channels {
		dataDir := filepath.Join(root, ch.dataDir)
		info, err := os.Stat(dataDir)
		if err != nil || !info.IsDir() {
			continue
		}
		exe := ch.command
		if d.LookPath != nil {
			if p, err := d.LookPath(ch.command); err == nil {
				exe = p
			}
		}
		found = append(found, Instance{
			Version:        ch.version,
			ExecutablePath: exe,
			UserDataDir:    dataDir,
		})
	}
	return found
}

// configRoot returns the directory holding per-channel data directories.
func (d *Detector) configRoot() string {
	switch d.GOOS {
	case "windows":
		return d.getenv("APPDATA")
	case "darwin":
		return filepath.Join(d.HomeDir, "Library", "Application Support")
	default:
		if xdg := d.getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if d.HomeDir == "" {
			return ""
		}
		return filepath.Join(d.HomeDir, ".config")
	}
}

func (d *Detector) getenv(key string) string {
	if d.Getenv == nil {
		return ""
	}
	return d.Getenv(key)
}

// Package config manages codejump's own settings file.
//
// The file is TOML and lives at $CODEJUMP_HOME/config.toml, or under the
// user config directory (e.g. ~/.config/codejump/config.toml). A missing
// file means defaults: both discoveries enabled, nothing pinned.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"

	"github.com/fgrehm/codejump/internal/editor"
)

const (
	configFileName = "config.toml"
	homeEnv        = "CODEJUMP_HOME"
)

// InstanceConfig declares an editor instance explicitly instead of relying
// on detection.
type InstanceConfig struct {
	Version    string `toml:"version"`
	Executable string `toml:"executable"`
	DataDir    string `toml:"data_dir"`
}

// Config holds codejump settings.
type Config struct {
	// DiscoverWorkspaces enables reading the editors' recently-opened lists.
	DiscoverWorkspaces bool `toml:"discover_workspaces"`
	// DiscoverMachines enables listing Remote-SSH hosts.
	DiscoverMachines bool `toml:"discover_machines"`
	// CustomWorkspaces are pinned URIs, always listed.
	CustomWorkspaces []string `toml:"custom_workspaces"`
	// Exclude holds path patterns for workspaces to hide.
	Exclude []string `toml:"exclude,omitempty"`
	// Instances replaces instance detection when non-empty.
	Instances []InstanceConfig `toml:"instances,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		DiscoverWorkspaces: true,
		DiscoverMachines:   true,
	}
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	if home := os.Getenv(homeEnv); home != "" {
		return filepath.Join(home, configFileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config directory: %w", err)
	}
	return filepath.Join(dir, "codejump", configFileName), nil
}

// Load reads the config at path. Keys missing from the file keep their
// default values; a missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, replacing the file atomically.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}

// Update loads the config at path, applies fn and saves the result while
// holding an exclusive lock, so concurrent pins do not lose writes.
func Update(path string, fn func(*Config) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking config: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	cfg, err := Load(path)
	if err != nil {
		return err
	}
	if err := fn(cfg); err != nil {
		return err
	}
	return Save(path, cfg)
}

// Pin appends uri to the pinned workspaces. Returns false if it was
// already pinned (compared case-insensitively).
func (c *Config) Pin(uri string) bool {
	if c.pinIndex(uri) >= 0 {
		return false
	}
	c.CustomWorkspaces = append(c.CustomWorkspaces, uri)
	return true
}

// Unpin removes uri from the pinned workspaces. Returns false if it was
// not pinned.
func (c *Config) Unpin(uri string) bool {
	i := c.pinIndex(uri)
	if i < 0 {
		return false
	}
	c.CustomWorkspaces = append(c.CustomWorkspaces[:i], c.CustomWorkspaces[i+1:]...)
	return true
}

func (c *Config) pinIndex(uri string) int {
	for i, pinned := range c.CustomWorkspaces {
		if strings.EqualFold(pinned, uri) {
			return i
		}
	}
	return -1
}

// EditorInstances converts the configured instances. Entries without a
// data directory are skipped; a missing version means stable.
func (c *Config) EditorInstances() []editor.Instance {
	var instances []editor.Instance
	for _, ic := range c.Instances {
		if ic.DataDir == "" {
			continue
		}
		version := editor.Version(strings.ToLower(ic.Version))
		if version == "" {
			version = editor.Stable
		}
		instances = append(instances, editor.Instance{
			Version:        version,
			ExecutablePath: ic.Executable,
			UserDataDir:    ic.DataDir,
		})
	}
	return instances
}

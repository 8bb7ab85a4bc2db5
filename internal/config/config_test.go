package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fgrehm/codejump/internal/editor"
)

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.DiscoverWorkspaces || !cfg.DiscoverMachines {
		t.Errorf("expected discoveries enabled by default, got %+v", cfg)
	}
	if len(cfg.CustomWorkspaces) != 0 {
		t.Errorf("expected no pins, got %v", cfg.CustomWorkspaces)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, `
discover_machines = false
custom_workspaces = ["file:///C:/a", "vscode-remote://ssh-remote+h/srv"]
exclude = ["tmp/**"]

[[instances]]
version = "Insiders"
executable = "/usr/bin/code-insiders"
data_dir = "/home/u/.config/Code - Insiders"

[[instances]]
executable = "/usr/bin/ignored"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.DiscoverWorkspaces {
		t.Error("DiscoverWorkspaces should keep its default")
	}
	if cfg.DiscoverMachines {
		t.Error("DiscoverMachines should be false")
	}
	if len(cfg.CustomWorkspaces) != 2 || cfg.CustomWorkspaces[1] != "vscode-remote://ssh-remote+h/srv" {
		t.Errorf("CustomWorkspaces = %v", cfg.CustomWorkspaces)
	}
	if len(cfg.Exclude) != 1 {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}

	instances := cfg.EditorInstances()
	if len(instances) != 1 {
		t.Fatalf("expected 1 instance, got %+v", instances)
	}
	want := editor.Instance{Version: editor.Insiders, ExecutablePath: "/usr/bin/code-insiders", UserDataDir: "/home/u/.config/Code - Insiders"}
	if instances[0] != want {
		t.Errorf("instance = %+v, want %+v", instances[0], want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "discover_machines = maybe\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.DiscoverWorkspaces = false
	cfg.CustomWorkspaces = []string{"file:///b", "file:///a"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.DiscoverWorkspaces {
		t.Error("DiscoverWorkspaces should round-trip as false")
	}
	if len(loaded.CustomWorkspaces) != 2 || loaded.CustomWorkspaces[0] != "file:///b" {
		t.Errorf("pins lost their order: %v", loaded.CustomWorkspaces)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only config.toml to remain, got %d entries", len(entries))
	}
}

func TestPinUnpin(t *testing.T) {
	cfg := Default()
	if !cfg.Pin("file:///C:/Work") {
		t.Fatal("first pin should be added")
	}
	if cfg.Pin("file:///c:/work") {
		t.Error("pinning a case variant should be a no-op")
	}
	if len(cfg.CustomWorkspaces) != 1 {
		t.Errorf("CustomWorkspaces = %v", cfg.CustomWorkspaces)
	}
	if !cfg.Unpin("FILE:///C:/WORK") {
		t.Error("unpin should match case-insensitively")
	}
	if cfg.Unpin("file:///C:/Work") {
		t.Error("unpinning twice should report false")
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	var wg sync.WaitGroup
	for _, uri := range []string{"file:///a", "file:///b", "file:///c", "file:///d"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := Update(path, func(c *Config) error {
				c.Pin(uri)
				return nil
			}); err != nil {
				t.Errorf("Update: %v", err)
			}
		}()
	}
	wg.Wait()

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.CustomWorkspaces) != 4 {
		t.Errorf("expected 4 pins after concurrent updates, got %v", cfg.CustomWorkspaces)
	}
}

func TestUpdate_CallbackErrorSkipsSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	boom := errors.New("boom")
	err := Update(path, func(c *Config) error {
		c.Pin("file:///x")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("config should not have been written, stat err = %v", err)
	}
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CODEJUMP_HOME", dir)
	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if want := filepath.Join(dir, "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

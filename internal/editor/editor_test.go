package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInstance_Equal(t *testing.T) {
	a := Instance{Version: Stable, ExecutablePath: `C:\Code\code.exe`, UserDataDir: `C:\Users\u\AppData\Roaming\Code`}
	b := Instance{Version: Stable, ExecutablePath: `c:\code\CODE.EXE`, UserDataDir: `c:\users\U\appdata\roaming\code`}
	if !a.Equal(b) {
		t.Error("instances differing only in path case should be equal")
	}
	if a.Key() != b.Key() {
		t.Errorf("Key() mismatch: %q vs %q", a.Key(), b.Key())
	}

	c := b
	c.Version = Insiders
	if a.Equal(c) {
		t.Error("instances with different versions should not be equal")
	}
}

func TestInstance_Paths(t *testing.T) {
	inst := Instance{UserDataDir: "/home/u/.config/Code"}
	if got, want := inst.LegacyStoragePath(), filepath.Join("/home/u/.config/Code", "storage.json"); got != want {
		t.Errorf("LegacyStoragePath() = %q, want %q", got, want)
	}
	if got, want := inst.StatePath(), filepath.Join("/home/u/.config/Code", "User", "globalStorage", "state.vscdb"); got != want {
		t.Errorf("StatePath() = %q, want %q", got, want)
	}
	if got, want := inst.SettingsPath(), filepath.Join("/home/u/.config/Code", "User", "settings.json"); got != want {
		t.Errorf("SettingsPath() = %q, want %q", got, want)
	}
}

func TestRegistry_Default(t *testing.T) {
	insiders := Instance{Version: Insiders, UserDataDir: "/a"}
	stable := Instance{Version: Stable, UserDataDir: "/b"}

	tests := []struct {
		name      string
		instances []Instance
		want      Instance
		wantOK    bool
	}{
		{"empty", nil, Instance{}, false},
		{"prefers stable", []Instance{insiders, stable}, stable, true},
		{"falls back to first", []Instance{insiders}, insiders, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewRegistry(tt.instances).Default()
			if ok != tt.wantOK {
				t.Fatalf("Default() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Default() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRegistry_InstancesIsACopy(t *testing.T) {
	r := NewRegistry([]Instance{{Version: Stable}})
	got := r.Instances()
	got[0].Version = Cursor
	if r.Instances()[0].Version != Stable {
		t.Error("mutating the returned slice changed the registry")
	}
}

func TestDetector_Linux(t *testing.T) {
	home := t.TempDir()
	mkdirAll(t, filepath.Join(home, ".config", "Code"))
	mkdirAll(t, filepath.Join(home, ".config", "Cursor"))

	d := &Detector{
		GOOS:    "linux",
		HomeDir: home,
		Getenv:  func(string) string { return "" },
		LookPath: func(name string) (string, error) {
			if name == "code" {
				return "/usr/bin/code", nil
			}
			return "", errors.New("not found")
		},
	}

	got := d.Detect()
	if len(got) != 2 {
		t.Fatalf("expected 2 instances, got %d: %+v", len(got), got)
	}
	if got[0].Version != Stable || got[0].ExecutablePath != "/usr/bin/code" {
		t.Errorf("first instance = %+v, want stable at /usr/bin/code", got[0])
	}
	if got[1].Version != Cursor || got[1].ExecutablePath != "cursor" {
		t.Errorf("second instance = %+v, want cursor with bare command", got[1])
	}
	if got[1].UserDataDir != filepath.Join(home, ".config", "Cursor") {
		t.Errorf("UserDataDir = %q", got[1].UserDataDir)
	}
}

func TestDetector_XDGConfigHome(t *testing.T) {
	xdg := t.TempDir()
	mkdirAll(t, filepath.Join(xdg, "VSCodium"))

	d := &Detector{
		GOOS:    "linux",
		HomeDir: t.TempDir(),
		Getenv: func(key string) string {
			if key == "XDG_CONFIG_HOME" {
				return xdg
			}
			return ""
		},
	}

	got := d.Detect()
	if len(got) != 1 || got[0].Version != VSCodium {
		t.Fatalf("expected one vscodium instance, got %+v", got)
	}
}

func TestDetector_WindowsWithoutAppData(t *testing.T) {
	d := &Detector{GOOS: "windows", HomeDir: t.TempDir(), Getenv: func(string) string { return "" }}
	if got := d.Detect(); len(got) != 0 {
		t.Errorf("expected no instances, got %+v", got)
	}
}

func TestSSHConfigPath(t *testing.T) {
	dir := t.TempDir()
	inst := Instance{Version: Stable, UserDataDir: dir}
	mkdirAll(t, filepath.Join(dir, "User"))
	writeFile(t, inst.SettingsPath(), `{
	// Remote-SSH
	"remote.SSH.configFile": "/etc/ssh/custom_config",
	"editor.fontSize": 13,
}`)

	got, err := SSHConfigPath(inst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/etc/ssh/custom_config" {
		t.Errorf("SSHConfigPath() = %q, want %q", got, "/etc/ssh/custom_config")
	}
}

func TestSSHConfigPath_ExpandsHome(t *testing.T) {
	dir := t.TempDir()
	inst := Instance{UserDataDir: dir}
	mkdirAll(t, filepath.Join(dir, "User"))
	writeFile(t, inst.SettingsPath(), `{"remote.SSH.configFile": "~/.ssh/work"}`)

	got, err := SSHConfigPath(inst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".ssh", "work"); got != want {
		t.Errorf("SSHConfigPath() = %q, want %q", got, want)
	}
}

func TestSSHConfigPath_NotFound(t *testing.T) {
	tests := []struct {
		name     string
		settings string // empty means no settings.json at all
	}{
		{"no settings file", ""},
		{"key absent", `{"editor.fontSize": 13}`},
		{"nested key is not the flat key", `{"remote": {"SSH": {"configFile": "/x"}}}`},
		{"non-string value", `{"remote.SSH.configFile": 42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			inst := Instance{UserDataDir: dir}
			if tt.settings != "" {
				mkdirAll(t, filepath.Join(dir, "User"))
				writeFile(t, inst.SettingsPath(), tt.settings)
			}
			_, err := SSHConfigPath(inst)
			if !errors.Is(err, ErrSettingNotFound) {
				t.Errorf("expected ErrSettingNotFound, got %v", err)
			}
		})
	}
}

func TestSSHConfigPath_Malformed(t *testing.T) {
	dir := t.TempDir()
	inst := Instance{UserDataDir: dir}
	mkdirAll(t, filepath.Join(dir, "User"))
	writeFile(t, inst.SettingsPath(), `{"remote.SSH.configFile": `)

	_, err := SSHConfigPath(inst)
	var derr *DeserializationError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DeserializationError, got %v", err)
	}
	if derr.Path != inst.SettingsPath() {
		t.Errorf("Path = %q, want %q", derr.Path, inst.SettingsPath())
	}
}

// --- Test helpers ---

func mkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

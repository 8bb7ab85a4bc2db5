// Package launch opens workspaces and remote machines in an editor instance.
package launch

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/fgrehm/codejump/internal/remote"
	"github.com/fgrehm/codejump/internal/workspace"
)

// ErrLaunchFailed matches every error returned by a Launcher.
var ErrLaunchFailed = errors.New("launch failed")

// Error reports an editor that could not be started for Target.
type Error struct {
	Target string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("could not open %s: %v", e.Target, e.Err)
}

// Unwrap exposes both ErrLaunchFailed and the underlying cause.
func (e *Error) Unwrap() []error {
	return []error{ErrLaunchFailed, e.Err}
}

// Starter starts name with args and returns without waiting for it to exit.
type Starter func(name string, args ...string) error

// Launcher starts editor processes.
type Launcher struct {
	start  Starter
	logger *slog.Logger
}

// New creates a Launcher that spawns detached processes.
func New(logger *slog.Logger) *Launcher {
	return &Launcher{start: startDetached, logger: logger}
}

// NewWithStarter creates a Launcher with a custom process starter.
func NewWithStarter(logger *slog.Logger, start Starter) *Launcher {
	return &Launcher{start: start, logger: logger}
}

// WorkspaceArgs returns the editor arguments that open rec.
// Saved .code-workspace files are opened as files, everything else as folders.
func WorkspaceArgs(rec workspace.Record) []string {
	if rec.Form == workspace.FormWorkspace {
		return []string{"--file-uri", rec.Path}
	}
	return []string{"--folder-uri", rec.Path}
}

// MachineArgs returns the editor arguments that open a new window connected
// to m through Remote-SSH.
func MachineArgs(m remote.Machine) []string {
	return []string{
		"--new-window",
		"--enable-proposed-api", "ms-vscode-remote.remote-ssh",
		"--remote", "ssh-remote+" + m.Host,
	}
}

// OpenWorkspace opens rec with the instance that recorded it.
func (l *Launcher) OpenWorkspace(rec workspace.Record) error {
	return l.run(rec.Path, rec.Instance.ExecutablePath, WorkspaceArgs(rec))
}

// OpenMachine opens a remote window on m with the instance that configured it.
func (l *Launcher) OpenMachine(m remote.Machine) error {
	return l.run(m.Host, m.Instance.ExecutablePath, MachineArgs(m))
}

func (l *Launcher) run(target, exe string, args []string) error {
	if exe == "" {
		return &Error{Target: target, Err: errors.New("no editor executable configured")}
	}
	l.logger.Debug("launching editor", "executable", exe, "args", args)
	if err := l.start(exe, args...); err != nil {
		return &Error{Target: target, Err: err}
	}
	return nil
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

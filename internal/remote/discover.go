// Package remote lists the SSH hosts each editor instance's Remote-SSH
// extension is configured to use.
package remote

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fgrehm/codejump/internal/editor"
	"github.com/fgrehm/codejump/internal/sshconfig"
)

// Machine is an SSH host as seen by one editor instance. HostName and User
// are empty strings, never absent, when the config does not set them.
type Machine struct {
	Host     string          `json:"host"`
	HostName string          `json:"hostName"`
	User     string          `json:"user"`
	Instance editor.Instance `json:"instance"`
}

// Target returns "user@hostname" when both are known, else "".
func (m Machine) Target() string {
	if m.User == "" || m.HostName == "" {
		return ""
	}
	return m.User + "@" + m.HostName
}

// ConfigLocator finds the ssh_config path for an instance.
type ConfigLocator func(editor.Instance) (string, error)

// Discoverer collects machines from every instance's ssh_config.
type Discoverer struct {
	locate ConfigLocator
	logger *slog.Logger
}

// NewDiscoverer creates a Discoverer that reads remote.SSH.configFile from
// each instance's settings.json.
func NewDiscoverer(logger *slog.Logger) *Discoverer {
	return &Discoverer{locate: editor.SSHConfigPath, logger: logger}
}

// NewDiscovererWithLocator creates a Discoverer with a custom config lookup.
func NewDiscovererWithLocator(logger *slog.Logger, locate ConfigLocator) *Discoverer {
	return &Discoverer{locate: locate, logger: logger}
}

// Discover returns the hosts of every instance, in instance then file order.
// Instances without a configured ssh_config, or whose settings or ssh_config
// cannot be read, are skipped.
func (d *Discoverer) Discover(ctx context.Context, instances []editor.Instance) []Machine {
	var machines []Machine
	for _, inst := range instances {
		if ctx.Err() != nil {
			break
		}
		machines = append(machines, d.discoverInstance(inst)...)
	}
	return machines
}

func (d *Discoverer) discoverInstance(inst editor.Instance) []Machine {
	path, err := d.locate(inst)
	if err != nil {
		if errors.Is(err, editor.ErrSettingNotFound) {
			return nil
		}
		attrs := []any{"instance", inst.Version, "error", err}
		var derr *editor.DeserializationError
		if errors.As(err, &derr) {
			attrs = append(attrs, "path", derr.Path)
		}
		d.logger.Warn("could not read editor settings, skipping", attrs...)
		return nil
	}

	hosts, err := sshconfig.ParseFile(path)
	if err != nil {
		if errors.Is(err, sshconfig.ErrNotFound) {
			d.logger.Debug("ssh config not found", "instance", inst.Version, "path", path)
		} else {
			d.logger.Warn("could not parse ssh config, skipping", "instance", inst.Version, "path", path, "error", err)
		}
		return nil
	}

	machines := make([]Machine, 0, len(hosts))
	for _, h := range hosts {
		machines = append(machines, Machine{
			Host:     h.Alias,
			HostName: h.HostName,
			User:     h.User,
			Instance: inst,
		})
	}
	return machines
}

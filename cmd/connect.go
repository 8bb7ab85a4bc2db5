package cmd

import (
	"fmt"
	"strings"

	"github.com/fgrehm/codejump/internal/editor"
	"github.com/fgrehm/codejump/internal/launch"
	"github.com/fgrehm/codejump/internal/remote"
	"github.com/spf13/cobra"
)

var connectInstanceFlag string

var connectCmd = &cobra.Command{
	Use:   "connect <host>",
	Short: "Open a new editor window on a Remote-SSH host",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := newUI()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := newRegistry(cfg)
		if err != nil {
			return err
		}

		instances := reg.Instances()
		if connectInstanceFlag != "" {
			inst, err := pickInstance(reg, connectInstanceFlag)
			if err != nil {
				return err
			}
			instances = []editor.Instance{inst}
		}

		machines := remote.NewDiscoverer(logger).Discover(cmd.Context(), instances)
		m, ok := findMachine(machines, args[0])
		if !ok {
			return fmt.Errorf("host %q not found in any Remote-SSH config", args[0])
		}

		if err := launch.New(logger).OpenMachine(m); err != nil {
			return err
		}
		u.Success("Connecting to " + machineTitle(m))
		return nil
	},
}

func init() {
	connectCmd.Flags().StringVarP(&connectInstanceFlag, "instance", "i", "", "editor instance to use (stable, insiders, vscodium, ...)")
}

// findMachine returns the first machine whose alias matches host,
// ignoring case.
func findMachine(machines []remote.Machine, host string) (remote.Machine, bool) {
	for _, m := range machines {
		if strings.EqualFold(m.Host, host) {
			return m, true
		}
	}
	return remote.Machine{}, false
}

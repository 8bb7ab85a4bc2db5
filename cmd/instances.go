package cmd

import (
	"github.com/spf13/cobra"
)

var instancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "List the editor instances codejump reads from",
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
		if len(instances) == 0 {
			u.Dim("No editor instances found")
			return nil
		}

		def, _ := reg.Default()
		var rows [][]string
		for _, inst := range instances {
			marker := ""
			if inst.Equal(def) {
				marker = "*"
			}
			rows = append(rows, []string{marker, string(inst.Version), inst.ExecutablePath, inst.UserDataDir})
		}
		u.Table([]string{"", "VERSION", "EXECUTABLE", "DATA DIR"}, rows)
		return nil
	},
}

package cmd

import (
	"github.com/fgrehm/codejump/internal/config"
	"github.com/fgrehm/codejump/internal/vscodeuri"
	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin <uri-or-path>",
	Short: "Always list a workspace, even if no editor recorded it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := newUI()

		uri, err := vscodeuri.FromPath(args[0])
		if err != nil {
			return err
		}
		path, err := configPath()
		if err != nil {
			return err
		}

		added := false
		if err := config.Update(path, func(c *config.Config) error {
			added = c.Pin(uri)
			return nil
		}); err != nil {
			return err
		}

		if !added {
			u.Warn(uri + " is already pinned")
			return nil
		}
		u.Success("Pinned " + uri)
		return nil
	},
}

var unpinCmd = &cobra.Command{
	Use:   "unpin <uri-or-path>",
	Short: "Remove a pinned workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := newUI()

		// Pins may have been added by hand, so try the argument verbatim
		// before normalizing it.
		candidates := []string{args[0]}
		if uri, err := vscodeuri.FromPath(args[0]); err == nil && uri != args[0] {
			candidates = append(candidates, uri)
		}
		path, err := configPath()
		if err != nil {
			return err
		}

		removed := ""
		if err := config.Update(path, func(c *config.Config) error {
			for _, uri := range candidates {
				if c.Unpin(uri) {
					removed = uri
					return nil
				}
			}
			return nil
		}); err != nil {
			return err
		}

		if removed == "" {
			u.Warn(args[0] + " is not pinned")
			return nil
		}
		u.Success("Unpinned " + removed)
		return nil
	},
}

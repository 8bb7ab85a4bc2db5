package cmd

import (
	"context"

	"github.com/fgrehm/codejump/internal/config"
	"github.com/fgrehm/codejump/internal/editor"
	"github.com/fgrehm/codejump/internal/remote"
	"github.com/fgrehm/codejump/internal/workspace"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	listJSONFlag       bool
	listWorkspacesFlag bool
	listHostsFlag      bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent workspaces and Remote-SSH hosts",
	RunE: func(cmd *cobra.Command, args []string) error {
		// With neither filter, show both.
		showWorkspaces := listWorkspacesFlag || !listHostsFlag
		showHosts := listHostsFlag || !listWorkspacesFlag
		return runList(cmd.Context(), showWorkspaces, showHosts, listJSONFlag)
	},
}

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List Remote-SSH hosts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), false, true, listJSONFlag)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSONFlag, "json", false, "print JSON instead of a table")
	listCmd.Flags().BoolVar(&listWorkspacesFlag, "workspaces", false, "only list workspaces")
	listCmd.Flags().BoolVar(&listHostsFlag, "hosts", false, "only list Remote-SSH hosts")
	hostsCmd.Flags().BoolVar(&listJSONFlag, "json", false, "print JSON instead of a table")
}

// listing is the JSON shape of the list command.
type listing struct {
	Workspaces []workspace.Record `json:"workspaces,omitempty"`
	Hosts      []remote.Machine   `json:"hosts,omitempty"`
}

func runList(ctx context.Context, showWorkspaces, showHosts, asJSON bool) error {
	u := newUI()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	out, err := discover(ctx, cfg, reg, showWorkspaces, showHosts && cfg.DiscoverMachines)
	if err != nil {
		return err
	}

	if asJSON {
		return u.JSON(out)
	}

	both := showWorkspaces && showHosts
	if showWorkspaces {
		if both {
			u.Header("Workspaces")
		}
		if len(out.Workspaces) == 0 {
			u.Dim("No workspaces")
		} else {
			u.Table([]string{"NAME", "KIND", "INSTANCE", "URI"}, workspaceRows(out.Workspaces))
		}
	}
	if showHosts {
		if both {
			u.Header("Remote-SSH hosts")
		}
		if len(out.Hosts) == 0 {
			u.Dim("No Remote-SSH hosts")
		} else {
			u.Table([]string{"HOST", "INSTANCE"}, machineRows(out.Hosts))
		}
	}
	return nil
}

// discover runs workspace and host discovery concurrently. Each side opens
// its own files, so they share nothing but the read-only registry.
func discover(ctx context.Context, cfg *config.Config, reg *editor.Registry, workspaces, hosts bool) (listing, error) {
	var out listing
	g, ctx := errgroup.WithContext(ctx)

	if workspaces {
		g.Go(func() error {
			def, _ := reg.Default()
			records, err := workspace.NewDiscoverer(logger).Discover(ctx, reg.Instances(), cfg.CustomWorkspaces, workspace.Options{
				IncludeDiscovered: cfg.DiscoverWorkspaces,
				DefaultInstance:   def,
				Exclude:           cfg.Exclude,
			})
			if err != nil {
				return err
			}
			out.Workspaces = records
			return nil
		})
	}
	if hosts {
		g.Go(func() error {
			out.Hosts = remote.NewDiscoverer(logger).Discover(ctx, reg.Instances())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return listing{}, err
	}
	return out, nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/fgrehm/codejump/internal/editor"
	"github.com/fgrehm/codejump/internal/launch"
	"github.com/fgrehm/codejump/internal/vscodeuri"
	"github.com/fgrehm/codejump/internal/workspace"
	"github.com/spf13/cobra"
)

var openInstanceFlag string

var openCmd = &cobra.Command{
	Use:   "open <uri-or-path>",
	Short: "Open a workspace in the editor",
	Long: `Open a workspace in the editor.

The argument may be a file:// or vscode-remote:// URI, as printed by
"codejump list", or a local path. Paths ending in .code-workspace are opened
as workspace files.`,
	Args: cobra.ExactArgs(1),
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
		inst, err := pickInstance(reg, openInstanceFlag)
		if err != nil {
			return err
		}

		rec, err := recordFromArg(args[0], inst)
		if err != nil {
			return err
		}

		if err := launch.New(logger).OpenWorkspace(rec); err != nil {
			return err
		}
		u.Success("Opened " + workspaceTitle(rec))
		return nil
	},
}

func init() {
	openCmd.Flags().StringVarP(&openInstanceFlag, "instance", "i", "", "editor instance to use (stable, insiders, vscodium, ...)")
}

// recordFromArg turns a URI or path argument into a workspace record.
func recordFromArg(arg string, inst editor.Instance) (workspace.Record, error) {
	uri, err := vscodeuri.FromPath(arg)
	if err != nil {
		return workspace.Record{}, err
	}
	rec, ok := workspace.NewRecord(uri, inst)
	if !ok {
		return workspace.Record{}, fmt.Errorf("unrecognized workspace location %q", arg)
	}
	if strings.HasSuffix(strings.ToLower(rec.RelativePath), ".code-workspace") {
		rec = rec.WithForm(workspace.FormWorkspace)
	}
	return rec, nil
}

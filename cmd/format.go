package cmd

import (
	"github.com/fgrehm/codejump/internal/remote"
	"github.com/fgrehm/codejump/internal/vscodeuri"
	"github.com/fgrehm/codejump/internal/workspace"
)

// workspaceTitle is the display name of a record: its label when the editor
// recorded one, otherwise the folder name, annotated with the machine and
// kind for remote records.
func workspaceTitle(rec workspace.Record) string {
	if rec.Label != "" {
		return rec.Label
	}
	if rec.Kind == vscodeuri.Local {
		return rec.FolderName
	}
	title := rec.FolderName
	if rec.ExtraInfo != "" && rec.ExtraInfo != rec.FolderName {
		title += " - " + rec.ExtraInfo
	}
	return title + " (" + rec.Kind.String() + ")"
}

// workspaceSubtitle describes where a record lives.
func workspaceSubtitle(rec workspace.Record) string {
	prefix := "Workspace"
	if rec.Form == workspace.FormWorkspace {
		prefix = "Workspace file"
	}
	if rec.Kind == vscodeuri.Local {
		return prefix + ": " + vscodeuri.LocalPath(rec.RelativePath)
	}
	return prefix + " in " + rec.Kind.String() + ": " + rec.RelativePath
}

// machineTitle is "host", followed by "[user@hostname]" when both are known.
func machineTitle(m remote.Machine) string {
	if t := m.Target(); t != "" {
		return m.Host + " [" + t + "]"
	}
	return m.Host
}

func workspaceRows(records []workspace.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			workspaceTitle(rec),
			rec.Kind.String(),
			string(rec.Instance.Version),
			rec.Path,
		})
	}
	return rows
}

func machineRows(machines []remote.Machine) [][]string {
	rows := make([][]string, 0, len(machines))
	for _, m := range machines {
		rows = append(rows, []string{
			machineTitle(m),
			string(m.Instance.Version),
		})
	}
	return rows
}

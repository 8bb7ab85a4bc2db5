package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header prints a section header: "==> msg" in bold blue.
func (u *UI) Header(msg string) {
	if u.isTTY {
		style := u.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
		u.println(style.Render("==> " + msg))
	} else {
		u.println("==> " + msg)
	}
}

// Success prints a success message: "  ✓ msg" in green (TTY) or "  ok msg" (non-TTY).
func (u *UI) Success(msg string) {
	if u.isTTY {
		style := u.renderer.NewStyle().Foreground(lipgloss.Color("2"))
		u.println(style.Render("  ✓ " + msg))
	} else {
		u.println("  ok " + msg)
	}
}

// Keyval prints a label-value pair: "  label   value" with bold fixed-width label.
func (u *UI) Keyval(key, value string) {
	padded := fmt.Sprintf("%-12s", key)
	if u.isTTY {
		style := u.renderer.NewStyle().Bold(true)
		u.printf("  %s%s\n", style.Render(padded), value)
	} else {
		u.printf("  %s%s\n", padded, value)
	}
}

// Dim prints dimmed text.
func (u *UI) Dim(msg string) {
	if u.isTTY {
		style := u.renderer.NewStyle().Faint(true)
		u.println(style.Render(msg))
	} else {
		u.println(msg)
	}
}

// Error prints an error message: "error: msg" to errOut.
// Only the "error:" prefix is styled to prevent lipgloss from mangling
// multi-line message bodies.
func (u *UI) Error(msg string) {
	if u.isTTY {
		prefix := u.renderer.NewStyle().Foreground(lipgloss.Color("1")).Render("error:")
		_, _ = fmt.Fprintf(u.errOut, "%s %s\n", prefix, msg)
	} else {
		_, _ = fmt.Fprintln(u.errOut, "error: "+msg)
	}
}

// Warn prints a warning message: "warning: msg" to errOut.
func (u *UI) Warn(msg string) {
	if u.isTTY {
		prefix := u.renderer.NewStyle().Foreground(lipgloss.Color("3")).Render("warning:")
		_, _ = fmt.Fprintf(u.errOut, "%s %s\n", prefix, msg)
	} else {
		_, _ = fmt.Fprintln(u.errOut, "warning: "+msg)
	}
}

// kindColors maps location kind names to ANSI colors.
var kindColors = map[string]string{
	"Local":         "2",
	"SSH":           "4",
	"WSL":           "5",
	"Codespaces":    "6",
	"Container":     "3",
	"Dev Container": "3",
}

// KindColor returns the kind name colored by location type. Unknown kinds
// and non-TTY output are returned unchanged.
func (u *UI) KindColor(kind string) string {
	color, ok := kindColors[kind]
	if !u.isTTY || !ok {
		return kind
	}
	return u.renderer.NewStyle().Foreground(lipgloss.Color(color)).Render(kind)
}

// Table prints a column-aligned table with bold headers.
// Widths are measured on the visible text, so styled cells align too.
func (u *UI) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	hdr := joinCells(headers, widths)
	if u.isTTY {
		style := u.renderer.NewStyle().Bold(true)
		u.println(style.Render(hdr))
	} else {
		u.println(hdr)
	}

	for _, row := range rows {
		u.println(joinCells(row, widths))
	}
}

// joinCells pads each cell to its column width. The last column is not
// padded so lines carry no trailing spaces.
func joinCells(cells []string, widths []int) string {
	var line strings.Builder
	for i, cell := range cells {
		if i > 0 {
			line.WriteString("  ")
		}
		line.WriteString(cell)
		if i < len(widths) && i < len(cells)-1 {
			line.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
		}
	}
	return line.String()
}

// println writes a line to out, discarding errors (not recoverable in CLI output).
func (u *UI) println(msg string) {
	_, _ = fmt.Fprintln(u.out, msg)
}

// printf writes formatted output to out, discarding errors.
func (u *UI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(u.out, format, args...)
}

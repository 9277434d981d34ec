package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/switchboard/internal/button"
	"github.com/dshills/switchboard/internal/conflict"
	"github.com/dshills/switchboard/internal/plugin"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// table renders rows as left-aligned columns separated by " │ ".
func table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.TrimRight(strings.Join(parts, " │ "), " ")
	}

	lines := []string{headerStyle.Render(line(header))}
	for _, row := range rows {
		lines = append(lines, line(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPlugins(infos []plugin.Info) string {
	title := titleStyle.Render(fmt.Sprintf("Plugins (%d)", len(infos)))
	if len(infos) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, dimStyle.Render("  no plugins found"))
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		state := "failed"
		if info.Loaded {
			state = "loaded"
		}
		rows = append(rows, []string{info.Name, info.Version, state, strconv.Itoa(info.Buttons), info.DisplayName})
	}
	return lipgloss.JoinVertical(lipgloss.Left, title,
		table([]string{"NAME", "VERSION", "STATE", "BUTTONS", "DISPLAY NAME"}, rows))
}

func renderControls(views []button.View) string {
	title := titleStyle.Render(fmt.Sprintf("Controls (%d)", len(views)))
	if len(views) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, dimStyle.Render("  no controls registered"))
	}

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		key := ""
		if v.Hints.Key != 0 {
			key = string(v.Hints.Key)
		}
		rows = append(rows, []string{
			v.ID,
			v.Name,
			v.Owner,
			v.Category.String(),
			v.Mode.String(),
			strconv.Itoa(v.Priority),
			key,
			v.OriginalKeybind,
		})
	}
	return lipgloss.JoinVertical(lipgloss.Left, title,
		table([]string{"ID", "NAME", "OWNER", "CATEGORY", "MODE", "PRIORITY", "KEY", "KEYBIND"}, rows))
}

func renderReport(r conflict.Report) string {
	if r.Empty() {
		return okStyle.Render("No conflicts.")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		renderGroups("Duplicate keybinds", r.Keybinds),
		renderGroups("Duplicate names", r.Names),
		dimStyle.Render(fmt.Sprintf("%d cross-owner group(s)", r.CrossOwner())),
	)
}

func renderGroups(title string, groups []conflict.Group) string {
	lines := []string{titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(groups)))}
	for _, g := range groups {
		head := fmt.Sprintf("  %q", g.Key)
		if g.CrossOwner() {
			head += " " + warnStyle.Render("cross-owner")
		}
		lines = append(lines, head)
		for _, m := range g.Members {
			lines = append(lines, fmt.Sprintf("    %s (%s)", m.ID, m.Owner))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

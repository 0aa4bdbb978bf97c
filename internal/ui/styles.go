package ui

import (
	"github.com/charmbracelet/lipgloss"

	"myday/internal/planner"
)

type styles struct {
	title    lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style
	header   lipgloss.Style
	card     lipgloss.Style
	cardNum  lipgloss.Style
	dim      lipgloss.Style
	accent   lipgloss.Style
	done     lipgloss.Style
	selected lipgloss.Style
	formBox  lipgloss.Style
	status   lipgloss.Style
	overlay  lipgloss.Style
}

type palette struct {
	fg, dim, accent, border, done, statusBg string
}

var palettes = map[planner.Theme]palette{
	planner.ThemeDark: {
		fg:       "#cdd6f4",
		dim:      "#a6adc8",
		accent:   "#89b4fa",
		border:   "#585b70",
		done:     "#a6e3a1",
		statusBg: "#313244",
	},
	planner.ThemeLight: {
		fg:       "#4c4f69",
		dim:      "#6c6f85",
		accent:   "#1e66f5",
		border:   "#9ca0b0",
		done:     "#40a02b",
		statusBg: "#dce0e8",
	},
}

func newStyles(theme planner.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[planner.ThemeDark]
	}
	fg := lipgloss.Color(p.fg)
	accent := lipgloss.Color(p.accent)
	return styles{
		title:    lipgloss.NewStyle().Foreground(fg).Bold(true),
		tab:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.dim)).Padding(0, 1),
		tabOn:    lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true).Padding(0, 1),
		header:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.border)).Padding(0, 1).Width(22),
		cardNum:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.dim)),
		accent:   lipgloss.NewStyle().Foreground(accent),
		done:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.done)).Strikethrough(true),
		selected: lipgloss.NewStyle().Foreground(fg).Bold(true),
		formBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		status:   lipgloss.NewStyle().Foreground(fg).Background(lipgloss.Color(p.statusBg)).Padding(0, 1),
		overlay:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 2),
	}
}

package report

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#6C63FF")
	colorMuted   = lipgloss.Color("#666666")
	colorAccent  = lipgloss.Color("#EAB308")
	colorSubtle  = lipgloss.Color("#414868")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	labelStyle = lipgloss.NewStyle().
			Width(18).
			Align(lipgloss.Right).
			Foreground(colorMuted)

	valueStyle = lipgloss.NewStyle().
			Width(16).
			Align(lipgloss.Right)

	totalStyle = lipgloss.NewStyle().
			Width(16).
			Align(lipgloss.Right).
			Bold(true).
			Foreground(colorAccent)

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1)
)

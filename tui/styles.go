package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB")).Background(lipgloss.Color("#111827")).Padding(0, 1)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	userStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#374151"))
	botStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563EB"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#E5E7EB")).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	Primary = lipgloss.Color("#7C3AED")
	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Danger  = lipgloss.Color("#EF4444")
	Info    = lipgloss.Color("#3B82F6")
	Muted   = lipgloss.Color("#6B7280")
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	DigestStyle = lipgloss.NewStyle().
			Foreground(Muted)

	FilePathStyle = lipgloss.NewStyle().
			Foreground(Info)

	KeeperStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger)
)

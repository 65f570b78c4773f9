package report

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"tasnim.dev/aws-perms/internal/perms"
)

// Colors
var (
	Primary = lipgloss.Color("#33A8FF")
	Muted   = lipgloss.Color("#6B7280")
	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	labelStyle = lipgloss.NewStyle().
			Foreground(Muted)

	documentStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1)

	warningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)
)

// OutcomeColor colors an outcome by how much it tells the auditor.
func OutcomeColor(o perms.Outcome) color.Color {
	switch o {
	case perms.OutcomeRoot:
		return Error
	case perms.OutcomeIntrospected:
		return Success
	case perms.OutcomeBruteforced:
		return Warning
	default:
		return Muted
	}
}

func OutcomeStyle(o perms.Outcome) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(OutcomeColor(o)).Bold(o != perms.OutcomeNone)
}

// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#6B9BFF")
	// SuccessColor indicates a reconciled or matching amount.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates a mismatch between expected and actual.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// SubtleColor indicates less prominent output.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// HeaderStyle formats table header cells.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SubtleColor)

	// MatchStyle formats a zero reconciliation diff.
	MatchStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// DiffStyle formats a nonzero reconciliation diff.
	DiffStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// SubtleStyle formats secondary values such as cycle ranges.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

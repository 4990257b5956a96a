package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	// CardStyle frames one summary figure.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(22)

	// LabelStyle for card captions.
	LabelStyle = lipgloss.NewStyle().Faint(true)

	buyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	sellStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	holdStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
)

// SignalStyle returns the style for a signal label.
func SignalStyle(sig types.SignalType) lipgloss.Style {
	switch sig {
	case types.SignalTypeBuy:
		return buyStyle
	case types.SignalTypeSell:
		return sellStyle
	default:
		return holdStyle
	}
}

// FormatChange formats a move with an arrow showing its direction.
func FormatChange(change, percent float64) string {
	s := fmt.Sprintf("%+.2f (%+.2f%%)", change, percent)

	if change > 0 {
		return s + " ▲"
	} else if change < 0 {
		return s + " ▼"
	}

	return s
}

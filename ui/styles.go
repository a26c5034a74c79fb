// Package ui implements the terminal prompt rendered by the UI subprocess.
//
// Rendering rules:
//   - All frames go to stderr; stdout is the reply channel and carries
//     exactly one envelope
//   - The prompt collects exactly one submission or cancellation
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	accentColor  = lipgloss.Color("#3B82F6") // Blue
)

// Styles for prompt components.
var (
	// TitleStyle for the prompt message.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// LabelStyle for field labels and tool indicators.
	LabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// ErrorStyle for validation failures.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// HelpStyle for the key binding line.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	// SelectedSwatchStyle marks the active palette entry.
	SelectedSwatchStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)
)

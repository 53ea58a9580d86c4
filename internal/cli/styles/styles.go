// Package styles provides reusable lipgloss styles for the CLI commands.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Title renders command section headers.
	Title = lipgloss.NewStyle().Bold(true)

	// Label renders the left column of key/value output.
	Label = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)

	// Value renders the right column of key/value output.
	Value = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	// Success marks completed operations.
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	// Error marks failed operations.
	Error = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	// Muted renders secondary detail such as paths.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Row renders an aligned label/value pair.
func Row(label, value string) string {
	return Label.Render(label) + " " + Value.Render(value)
}

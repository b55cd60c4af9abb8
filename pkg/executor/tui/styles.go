package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/rubrica/pkg/executor/tui/types"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(types.SalmonPink).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(types.MutedGray)

	tipsStyle = lipgloss.NewStyle().
			Foreground(types.MutedGray)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(types.MutedGray).
			Padding(0, 1)

	searchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(types.MutedGray).
			Padding(0, 1)

	activeSearchBoxStyle = searchBoxStyle.
				BorderForeground(types.SalmonPink)

	emptyStyle = lipgloss.NewStyle().
			Foreground(types.MutedGray).
			Italic(true).
			Padding(1, 2)
)

// tableStyles themes the contact table with the shared palette.
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(types.MutedGray).
		BorderBottom(true).
		Foreground(types.SalmonPink).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#111827")).
		Background(types.SalmonPink).
		Bold(false)
	s.Cell = s.Cell.Foreground(types.BrightWhite)
	return s
}

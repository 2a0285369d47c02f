package cli

import "github.com/charmbracelet/lipgloss"

const titleWidth = 34

var (
	groupStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	titleStyle   = lipgloss.NewStyle().Width(titleWidth).PaddingLeft(2)
	bindingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Task   TaskTheme
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Mode   lipgloss.Style
}

// TaskTheme styles bullets and tags in the task pane and detail panel.
type TaskTheme struct {
	Done     lipgloss.Style
	Overdue  lipgloss.Style
	DueToday lipgloss.Style
	Tag      lipgloss.Style
	Label    lipgloss.Style
	Panel    lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
			Mode: lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true),
		},
		Task: TaskTheme{
			Done:     faint.Strikethrough(true),
			Overdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
			DueToday: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
			Tag:      faint,
			Label:    faint,
			Panel: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
		},
	}
}

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAdvisor = lipgloss.AdaptiveColor{Light: "#BE185D", Dark: "#F472B6"}
	colorUser    = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAdvisor)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 2)

	userBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorUser).
			Padding(0, 1)

	advisorBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorAdvisor).
				Padding(0, 1)

	userHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorUser)
	advisorHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAdvisor)

	typingStyle = lipgloss.NewStyle().Foreground(colorAdvisor)

	inputBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderTop(true).
				BorderForeground(colorMuted)

	statusStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

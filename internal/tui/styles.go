package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#0F172A", Dark: "#F8FAFC"}
	colorSubtle = lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"}
	colorDanger = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
)

// Styles groups the lipgloss styles used by the view.
type Styles struct {
	App       lipgloss.Style
	Title     lipgloss.Style
	Button    lipgloss.Style
	Hint      lipgloss.Style
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardCount lipgloss.Style
	Toast     lipgloss.Style
	HelpBar   lipgloss.Style
}

// DefaultStyles returns the stock styles.
func DefaultStyles() Styles {
	return Styles{
		App:       lipgloss.NewStyle().Padding(1, 2),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Button:    lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(colorSubtle),
		Hint:      lipgloss.NewStyle().Foreground(colorSubtle).MarginTop(1).MarginBottom(1),
		Card:      lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(colorSubtle).Width(cardWidth),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		CardCount: lipgloss.NewStyle().Foreground(colorSubtle),
		Toast:     lipgloss.NewStyle().Bold(true).Foreground(colorDanger).MarginTop(1),
		HelpBar:   lipgloss.NewStyle().Foreground(colorSubtle).MarginTop(1),
	}
}

package console

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	colorAccent  = "#7aa2f7"
	colorSuccess = "#9ece6a"
	colorDanger  = "#f7768e"
)

type styles struct {
	heading lipgloss.Style
	notice  lipgloss.Style
	problem lipgloss.Style
}

func newStyles() styles {
	return styles{
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent)),
		notice:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess)),
		problem: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorDanger)),
	}
}

func (c *Console) render(style lipgloss.Style, text string) string {
	if !c.colorize {
		return text
	}
	return style.Render(text)
}

func titleCase(value string) string {
	return cases.Title(language.English).String(value)
}

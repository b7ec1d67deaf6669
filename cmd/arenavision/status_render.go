package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"arenavision/internal/deps"
)

// checkMark is the verdict printed next to one required program.
type checkMark int

const (
	markFound checkMark = iota
	markNotNeeded
	markMissing
)

const (
	reportLabelWidth = 14
	markTagWidth     = len("[not needed]")
)

var (
	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	foundStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	notNeededStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	missingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f7768e"))
)

func markFor(status deps.Status) checkMark {
	switch {
	case status.Available:
		return markFound
	case status.Optional:
		return markNotNeeded
	default:
		return markMissing
	}
}

func (m checkMark) tag() string {
	switch m {
	case markFound:
		return "[ok]"
	case markNotNeeded:
		return "[not needed]"
	default:
		return "[missing]"
	}
}

func (m checkMark) style() lipgloss.Style {
	switch m {
	case markFound:
		return foundStyle
	case markNotNeeded:
		return notNeededStyle
	default:
		return missingStyle
	}
}

// checkReport writes the `check` output: a settings block followed by one
// line per program. Padding is applied before colour so columns stay aligned.
type checkReport struct {
	out      io.Writer
	colorize bool
}

func (r checkReport) heading(title string) {
	fmt.Fprintln(r.out, r.paint(headingStyle, title))
}

func (r checkReport) setting(label, value string) {
	fmt.Fprintf(r.out, "  %-*s %s\n", reportLabelWidth, label, value)
}

func (r checkReport) program(status deps.Status) {
	mark := markFor(status)
	detail := status.Command
	if mark != markFound {
		detail = status.Detail
	}
	tag := fmt.Sprintf("%-*s", markTagWidth, mark.tag())
	fmt.Fprintf(r.out, "  %s %-*s %s\n", r.paint(mark.style(), tag), reportLabelWidth, status.Name, detail)
}

func (r checkReport) paint(style lipgloss.Style, text string) string {
	if !r.colorize {
		return text
	}
	return style.Render(text)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

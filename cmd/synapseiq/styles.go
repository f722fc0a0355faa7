package main

import (
	"github.com/charmbracelet/lipgloss"
)

// styles used by the terminal views. Colors degrade to plain text when the
// output is not a terminal.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7c3aed")).
			Bold(true)

	quoteStyle = lipgloss.NewStyle().
			Italic(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280"))

	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#dc2626")).
			Bold(true)
)

// Package tui provides terminal prompts and styled output for the CLI.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginTop(1).
			MarginBottom(1)

	questionStyle = lipgloss.NewStyle().Bold(true)

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Banner renders a heading line.
func Banner(s string) string { return bannerStyle.Render(s) }

// Notice renders a success or progress line.
func Notice(s string) string { return noticeStyle.Render(s) }

// Warn renders a correction hint.
func Warn(s string) string { return warnStyle.Render(s) }

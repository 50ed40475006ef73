// Package ui renders the end-of-run summary for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/fleetprov/internal/provisioning"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	completedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	failedStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// RenderSummary formats the run summary as a small block for the terminal.
func RenderSummary(s provisioning.Summary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Provisioning summary"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %d\n", dimStyle.Render("valid hosts:"), s.Valid))
	if s.ParseErrors > 0 {
		b.WriteString(fmt.Sprintf("  %s %d\n", warningStyle.Render("parse errors:"), s.ParseErrors))
	}
	if s.DryRun > 0 {
		b.WriteString(fmt.Sprintf("  %s %d\n", dimStyle.Render("dry-run:"), s.DryRun))
	}
	b.WriteString(fmt.Sprintf("  %s %d\n", completedStyle.Render("completed:"), s.Completed))
	style := completedStyle
	if s.Failed > 0 {
		style = failedStyle
	}
	b.WriteString(fmt.Sprintf("  %s %d\n", style.Render("failed:"), s.Failed))

	return b.String()
}

package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/HicaroD/sketchpp/internal/diagnostics"
)

var (
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
)

func canColorStderr() bool {
	if noColor {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Prints diagnostics to stderr as they are reported, colored when stderr is
// a terminal.
func newCollector() *diagnostics.Collector {
	collector := diagnostics.New()
	if !canColorStderr() {
		return collector
	}

	renderer := lipgloss.NewRenderer(os.Stderr)
	label := map[diagnostics.DiagKind]lipgloss.Style{
		diagnostics.SYNTAX:             renderer.NewStyle().Foreground(colorError).Bold(true),
		diagnostics.LEXICAL:            renderer.NewStyle().Foreground(colorError).Bold(true),
		diagnostics.SEMANTIC_PREDICATE: renderer.NewStyle().Foreground(colorWarning).Bold(true),
	}

	collector.Format = func(diag diagnostics.Diag) string {
		return label[diag.Kind].Render(diag.Kind.String()+":") + " " + diag.Message
	}
	return collector
}

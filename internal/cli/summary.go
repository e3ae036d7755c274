package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/mediaforge/mediaconv/pkg/convert"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// printSummary renders the human-readable batch summary on w. Styling is only
// applied on interactive runs; piped output stays plain.
func printSummary(w io.Writer, report convert.Report, styled bool) {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	s := report.Summary
	fmt.Fprintln(w, render(headerStyle, fmt.Sprintf("Converted %d file(s) in %.1fs", s.Total, s.DurationSeconds)))
	fmt.Fprintf(w, "  %s  %s  %s\n",
		render(successStyle, fmt.Sprintf("%d succeeded", s.Succeeded)),
		render(failStyle, fmt.Sprintf("%d failed", s.Failed)),
		render(skipStyle, fmt.Sprintf("%d skipped", s.Skipped)))

	for _, res := range report.Results {
		switch res.Outcome {
		case convert.OutcomeFailed:
			fmt.Fprintf(w, "  %s %s: %s\n", render(failStyle, "✗"), res.Source, res.Error)
		case convert.OutcomeSkipped:
			fmt.Fprintf(w, "  %s %s: %s\n", render(skipStyle, "-"), res.Source, res.Error)
		}
	}

	if s.EncoderVersion != "" {
		fmt.Fprintln(w, render(dimStyle, "  encoder: ffmpeg "+s.EncoderVersion))
	}
}

// Package report renders the results of processed branches for humans.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/simplesurance/prsync/internal/branchsync"
)

type glyph struct {
	symbol string
	style  lipgloss.Style
}

var glyphs = map[branchsync.Outcome]glyph{
	branchsync.OutcomeSucceeded:  {"✔", lipgloss.NewStyle().Foreground(lipgloss.Color("2"))},
	branchsync.OutcomeNotChanged: {"=", lipgloss.NewStyle().Foreground(lipgloss.Color("4"))},
	branchsync.OutcomeSkipped:    {"-", lipgloss.NewStyle().Foreground(lipgloss.Color("8"))},
	branchsync.OutcomeFailed:     {"✘", lipgloss.NewStyle().Foreground(lipgloss.Color("1"))},
}

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	summaryStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
)

// Line renders a single result.
func Line(res *branchsync.ProcessResult) string {
	g, exists := glyphs[res.Outcome]
	if !exists {
		g = glyph{symbol: "?", style: lipgloss.NewStyle()}
	}

	return fmt.Sprintf("%s %s: %s", g.style.Render(g.symbol), labelStyle.Render(res.BranchLabel), res.Detail)
}

// Summary renders the counts of a report.
func Summary(r *branchsync.Report) string {
	return summaryStyle.Render(fmt.Sprintf(
		"Total: %d, Succeeded: %d, Failed: %d, Skipped: %d",
		r.Total, r.Succeeded, r.Failed, r.Skipped,
	))
}

// Write writes one line per result followed by the summary to w.
func Write(w io.Writer, r *branchsync.Report) error {
	for _, res := range r.Results {
		if _, err := fmt.Fprintln(w, Line(res)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, Summary(r))
	return err
}

// WriteResult writes the line of a single result.
func WriteResult(w io.Writer, res *branchsync.ProcessResult) error {
	_, err := fmt.Fprintln(w, Line(res))
	return err
}

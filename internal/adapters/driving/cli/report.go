package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(16)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// renderReport formats a run report for terminal display.
func renderReport(report *driving.RunReport, dryRun bool) string {
	var b strings.Builder

	title := "Push complete"
	if dryRun {
		title = "Dry run complete"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	row := func(label string, value any) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(fmt.Sprintf(" %v\n", value))
	}

	row("Documents", report.MarkdownDocs)
	row("Chunks", fmt.Sprintf("%d (%d markdown, %d spec)",
		report.ChunkCount, report.MarkdownChunks, report.SpecChunks))
	if !dryRun {
		row("Batches", report.BatchCount)
		if report.DatasetID != "" {
			row("Dataset", report.DatasetID)
		}
	}
	row("Duration", report.Duration.Round(time.Millisecond))

	if report.SourceErrors > 0 {
		b.WriteString(warnStyle.Render(
			fmt.Sprintf("%d source(s) failed to parse and were skipped", report.SourceErrors)))
		b.WriteString("\n")
	}
	return b.String()
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sync runs",
	Long:  `Prints recent pipeline runs from the local history journal, newest first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	j := journal
	if j == nil {
		sj, err := sqlite.NewJournal("")
		if err != nil {
			return fmt.Errorf("open history journal: %w", err)
		}
		defer sj.Close()
		j = sj
	}

	runs, err := j.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		cmd.Println(formatRun(run))
	}
	return nil
}

// formatRun renders one journal row as a single line.
func formatRun(run domain.SyncRun) string {
	line := fmt.Sprintf("%s  %-9s  %d chunks in %d batches",
		run.StartedAt.Local().Format(time.DateTime), run.Status, run.ChunkCount, run.BatchCount)
	if run.SourceErrors > 0 {
		line += fmt.Sprintf("  (%d source errors)", run.SourceErrors)
	}
	if run.Status == domain.RunStatusFailed && run.Error != "" {
		line += "  " + run.Error
	}
	return line
}

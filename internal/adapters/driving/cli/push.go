package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var pushDryRun bool

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Extract chunks and replace the remote dataset contents",
	Long: `Walks the content root for Markdown/MDX documents, extracts chunk
records (plus OpenAPI route chunks when a spec is configured), ensures
the target dataset exists and is empty, and uploads the records in
ordered batches.

With --dry-run only the extraction phase runs and nothing is sent to
the remote store.`,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().BoolVar(&pushDryRun, "dry-run", false,
		"extract and report without touching the remote dataset")
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, _ []string) error {
	if err := initServices(!pushDryRun); err != nil {
		return err
	}
	if pipeline == nil {
		return errors.New("pipeline not configured")
	}

	// Ctrl-C cancels between remote attempts.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if pushDryRun {
		report, err := pipeline.Extract(ctx)
		if err != nil {
			return fmt.Errorf("extract failed: %w", err)
		}
		cmd.Print(renderReport(report, true))
		return nil
	}

	report, err := pipeline.Push(ctx)
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	cmd.Print(renderReport(report, false))
	return nil
}

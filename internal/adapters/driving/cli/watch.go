package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/logger"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-push whenever the content tree changes",
	Long: `Runs an initial push, then watches the content root for file
changes and pushes again after each burst of edits settles. Stop with
Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second,
		"quiet period to wait after a change before pushing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := initServices(true); err != nil {
		return err
	}
	if pipeline == nil {
		return errors.New("pipeline not configured")
	}
	if watchSignal == nil {
		return errors.New("watcher not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := pipeline.Push(ctx)
	if err != nil {
		return fmt.Errorf("initial push failed: %w", err)
	}
	cmd.Print(renderReport(report, false))

	changes, err := watchSignal(ctx, watchDebounce)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	cmd.Println("Watching for changes...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			cmd.Println("Change detected, pushing...")
			report, err := pipeline.Push(ctx)
			if err != nil {
				// Keep watching; the next save may fix the problem.
				logger.Warn("push failed: %v", err)
				cmd.Printf("Push failed: %v\n", err)
				continue
			}
			cmd.Print(renderReport(report, false))
		}
	}
}

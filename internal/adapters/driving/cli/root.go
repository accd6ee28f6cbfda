// Package cli implements the docdex command line interface. Commands
// are thin adapters: they load configuration, wire the driven adapters
// into the core services, and render run reports.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/config"
	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/trieve"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdex-cli/internal/core/services"
	"github.com/custodia-labs/docdex-cli/internal/extractors/markdown"
	"github.com/custodia-labs/docdex-cli/internal/extractors/openapi"
	"github.com/custodia-labs/docdex-cli/internal/logger"
	"github.com/custodia-labs/docdex-cli/internal/resolvers/filesystem"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfgPath string
	verbose bool
)

// Services wired by initServices. Tests inject mocks directly.
var (
	pipeline    driving.Pipeline
	journal     driven.RunJournal
	watchSignal func(ctx context.Context, debounce time.Duration) (<-chan struct{}, error)
)

var rootCmd = &cobra.Command{
	Use:   "docdex",
	Short: "Push documentation content into a search dataset",
	Long: `docdex converts a tree of Markdown/MDX documentation, plus an
optional OpenAPI specification, into searchable chunk records and
replaces the contents of a remote Trieve dataset with them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"config file path (default ~/.docdex/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices loads configuration and wires the pipeline. A pipeline
// already present (injected by tests) is left untouched. requireRemote
// controls whether remote credentials are validated; dry runs only need
// a content root.
func initServices(requireRemote bool) error {
	if pipeline != nil {
		return nil
	}

	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if requireRemote {
		if err := c.Validate(); err != nil {
			return err
		}
	} else if c.Content.Root == "" {
		return fmt.Errorf("content root missing: set %s or content.root", config.EnvContentRoot)
	}

	resolver := filesystem.New(c.Content.Root, c.Content.Exclude)
	watchSignal = resolver.Watch

	md := markdown.New(c.Content.Root, c.Content.RootURL)
	var spec driven.SpecExtractor
	if c.Spec.Location != "" {
		spec = openapi.New(c.Spec.Location, c.Spec.SiteURL, c.Spec.RefParent)
	}

	store := trieve.NewClient(trieve.Config{
		BaseURL:           c.Remote.BaseURL,
		APIKey:            c.Remote.APIKey,
		OrganizationID:    c.Remote.OrganizationID,
		Timeout:           time.Duration(c.Remote.TimeoutSecs) * time.Second,
		RequestsPerSecond: c.Remote.RequestsPerSecond,
	})

	initial, max := c.RetryDelays()
	retry := services.RetryPolicy{
		MaxAttempts:  c.Upload.MaxAttempts,
		InitialDelay: initial,
		MaxDelay:     max,
		Multiplier:   2.0,
	}

	if journal == nil {
		j, err := sqlite.NewJournal("")
		if err != nil {
			// History is best-effort; runs proceed without it.
			logger.Warn("history journal unavailable: %v", err)
		} else {
			journal = j
		}
	}

	pipeline = services.NewPipelineOrchestrator(
		resolver,
		md,
		spec,
		services.NewDatasetSynchronizer(store, retry),
		services.NewBatchUploader(store, c.Upload.BatchSize, retry),
		journal,
		c.Remote.DatasetTrackingID,
	)
	return nil
}

// Package cli implements the docsync command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsync/internal/config"
	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
	"github.com/custodia-labs/docsync/internal/core/ports/driving"
	"github.com/custodia-labs/docsync/internal/logger"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// IngestFactory builds the ingestion service for a validated configuration.
type IngestFactory func(cfg *config.Config, reporter driven.ProgressReporter) (driving.Ingestor, error)

// SearchFactory builds the search service for a validated configuration.
type SearchFactory func(cfg *config.Config) (driving.SearchService, error)

var (
	version = "dev"

	configPath string
	verbose    bool
	dryRun     bool

	loadConfig    = config.Load
	ingestFactory IngestFactory
	searchFactory SearchFactory
)

var rootCmd = &cobra.Command{
	Use:   "docsync",
	Short: "Sync documentation from GitHub into a Mixedbread store",
	Long: `Lists the documentation tree of a GitHub repository, downloads every
markdown file and uploads it with its front matter to a Mixedbread store.

The run is skipped when the store already holds files. Individual download
or upload failures are reported and do not stop the run.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runIngest,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "upload to an in-memory store instead of Mixedbread")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetFactories wires the services used by the commands.
func SetFactories(ingest IngestFactory, search SearchFactory) {
	ingestFactory = ingest
	searchFactory = search
}

// Execute runs the command line and returns the process exit code.
// Errors are printed as a single line on stderr.
func Execute(ctx context.Context, args []string) int {
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	NewConsole(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr()).Fatal(err)
	return exitCode(err)
}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return ExitFailure
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cfg.DryRun = dryRun
	if err := cfg.Validate(); err != nil {
		return err
	}
	if ingestFactory == nil {
		return errors.New("ingest service not configured")
	}

	console := NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if cfg.DryRun {
		console.Warn("Dry run: uploads go to an in-memory store")
	}

	ingestor, err := ingestFactory(cfg, console)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}

	report, err := ingestor.Run(cmd.Context())
	if err != nil {
		if domain.IsFatal(err) {
			return err
		}
		console.Warn("Run finished with errors: %v", err)
	}

	if report == nil {
		return nil
	}
	logger.Debug("run report",
		"run_id", report.RunID,
		"outcome", report.Outcome,
		"listed", report.Summary.Listed,
		"downloaded", report.Summary.Downloaded,
		"download_failed", report.Summary.DownloadFailed,
		"uploaded", report.Summary.Uploaded,
		"upload_failed", report.Summary.UploadFailed,
		"took", report.Duration(),
	)
	return nil
}

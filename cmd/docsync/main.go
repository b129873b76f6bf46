// Command docsync syncs a GitHub documentation tree into a Mixedbread store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/docsync/internal/adapters/driven/mxbai"
	"github.com/custodia-labs/docsync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docsync/internal/adapters/driving/cli"
	"github.com/custodia-labs/docsync/internal/config"
	"github.com/custodia-labs/docsync/internal/connectors/github"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
	"github.com/custodia-labs/docsync/internal/core/ports/driving"
	"github.com/custodia-labs/docsync/internal/core/services"
	"github.com/custodia-labs/docsync/internal/metrics"
	"github.com/custodia-labs/docsync/internal/normalisers/markdown"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetFactories(newIngestor, newSearchService)
	return cli.Execute(ctx, os.Args[1:])
}

// newIngestor wires the ingestion pipeline for cfg.
func newIngestor(cfg *config.Config, reporter driven.ProgressReporter) (driving.Ingestor, error) {
	repo, err := github.NewClient(context.Background(), github.Options{
		Token:             cfg.GitHubToken,
		BaseURL:           cfg.GitHubBaseURL,
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.GitHubRPS,
		Burst:             cfg.FetchConcurrency,
	})
	if err != nil {
		return nil, err
	}

	var store driven.ContentStore
	if cfg.DryRun {
		store = memory.NewContentStore()
	} else {
		client, err := newStoreClient(cfg)
		if err != nil {
			return nil, err
		}
		store = client
	}

	return services.NewIngestService(
		services.IngestConfig{
			StoreID:           cfg.StoreID,
			Repo:              cfg.RepoRef(),
			Filter:            cfg.Filter(),
			FetchConcurrency:  cfg.FetchConcurrency,
			UploadConcurrency: cfg.UploadConcurrency,
		},
		repo,
		store,
		markdown.New(cfg.SourceURLHost, cfg.SourceURLStripPrefix),
		reporter,
		metrics.NewRecorder(cfg.PushgatewayURL),
	), nil
}

// newSearchService wires the verification search for cfg.
func newSearchService(cfg *config.Config) (driving.SearchService, error) {
	client, err := newStoreClient(cfg)
	if err != nil {
		return nil, err
	}
	return services.NewSearchService(client, cfg.StoreID), nil
}

func newStoreClient(cfg *config.Config) (*mxbai.Client, error) {
	client, err := mxbai.NewClient(mxbai.Config{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.StoreBaseURL,
		Timeout:      cfg.HTTPTimeout,
		PollInterval: cfg.PollInterval,
		PollTimeout:  cfg.PollTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("content store: %w", err)
	}
	return client, nil
}

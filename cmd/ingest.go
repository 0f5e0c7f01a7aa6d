package main

import (
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/showatlas/showatlas/internal/extract"
	"github.com/showatlas/showatlas/internal/fetch"
	"github.com/showatlas/showatlas/internal/model"
	"github.com/showatlas/showatlas/internal/parser"
	"github.com/showatlas/showatlas/internal/pipeline"
	"github.com/showatlas/showatlas/internal/scorer"
	"github.com/showatlas/showatlas/internal/staging"
	"github.com/showatlas/showatlas/pkg/anthropic"
	"github.com/showatlas/showatlas/pkg/geocode"
)

var (
	ingestURL         string
	ingestParser      string
	ingestRenormalize bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch configured sources and stage new show candidates",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := initPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		stagingStore := staging.NewStore(pool)
		if err := stagingStore.Migrate(ctx); err != nil {
			return err
		}

		runner := buildRunner(stagingStore, scorer.NewStore(pool))

		if ingestRenormalize {
			updated, err := runner.Renormalize(ctx)
			if err != nil {
				return err
			}
			zap.L().Info("renormalized pending records", zap.Int("updated", updated))
			return nil
		}

		sources := cfg.Sources
		if ingestURL != "" {
			sources = []model.Source{{URL: ingestURL, Parser: ingestParser}}
		}
		if len(sources) == 0 {
			return eris.New("no sources configured; set sources in config.yaml or pass --url")
		}

		runner.Run(ctx, sources)
		return nil
	},
}

func buildRunner(stagingStore *staging.Store, scoreStore *scorer.Store) *pipeline.Runner {
	fetcher := fetch.New(
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSecs)*time.Second),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithMinBodyBytes(cfg.Fetch.MinBodyBytes),
	)

	registry := parser.NewRegistry(
		parser.NewListLineSource("listline", "Gun Show", nil),
		parser.NewCSVSource("csv"),
	)

	extractor := extract.New(anthropic.NewClient(cfg.Anthropic.Key), extract.Options{
		Model:             cfg.Anthropic.Model,
		MaxTokens:         cfg.Anthropic.MaxTokens,
		MaxRequestsPerRun: cfg.Extract.MaxRequestsPerRun,
		RequestDelay:      time.Duration(cfg.Extract.RequestDelayMs) * time.Millisecond,
		OverloadRetries:   cfg.Extract.OverloadRetries,
		OverloadDelay:     time.Duration(cfg.Extract.OverloadDelaySecs) * time.Second,
	})

	geocoder := geocode.NewClient(cfg.Geocode.Key,
		geocode.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Geocode.TimeoutSecs) * time.Second}),
		geocode.WithCallDelay(time.Duration(cfg.Geocode.CallDelayMs)*time.Millisecond),
	)

	return pipeline.New(cfg, fetcher, registry, extractor, geocoder, stagingStore, scoreStore, nil)
}

func init() {
	ingestCmd.Flags().StringVar(&ingestURL, "url", "", "ingest a single source URL instead of the configured list")
	ingestCmd.Flags().StringVar(&ingestParser, "parser", "", "deterministic parser for --url (empty = AI extraction)")
	ingestCmd.Flags().BoolVar(&ingestRenormalize, "renormalize", false, "re-run the normalizer over PENDING records instead of ingesting")
	rootCmd.AddCommand(ingestCmd)
}

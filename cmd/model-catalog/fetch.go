// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/model-catalog/internal/enrich"
	"github.com/pdiddy/model-catalog/internal/pricing"
	"github.com/pdiddy/model-catalog/internal/resolve"
	"github.com/pdiddy/model-catalog/internal/runware"
	"github.com/pdiddy/model-catalog/internal/scrape"
	"github.com/pdiddy/model-catalog/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultLimit     = 20
	defaultUserAgent = "model-catalog/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch curated and scraped model lists and write enriched catalogs",
	Long: `Fetch runs the full pipeline: the hand-curated popular list is resolved
against the catalog API, each configured collection page is scraped and
resolved, pricing data is attached from the local price table, and one
JSON catalog per list is written to the output directory.

Entries that cannot be resolved to an AIR are dropped from the output.
A failed collection is skipped; the run continues with the next one.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("api-key", "", "catalog API key (overrides env and .secrets/)")
	fetchCmd.Flags().String("output-dir", "data", "directory for catalog JSON files")
	fetchCmd.Flags().String("pricing", filepath.Join("data", "pricing.json"), "local price table (optional)")
	fetchCmd.Flags().String("lists", "", "YAML file overriding the built-in model and collection lists")
	fetchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	fetchCmd.Flags().Int("limit", defaultLimit, "per-request search result count")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	apiKey := resolveAPIKey(apiKeyFlag)
	if apiKey == "" {
		return fmt.Errorf("catalog API key not configured: set --api-key, MODEL_CATALOG_API_KEY, or .secrets/runware-api-key")
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	pricingFile, _ := cmd.Flags().GetString("pricing")
	listsFile, _ := cmd.Flags().GetString("lists")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	limit, _ := cmd.Flags().GetInt("limit")

	lists := enrich.Lists{
		PopularModels: enrich.DefaultCuratedModels,
		Collections:   enrich.DefaultCollections,
	}
	if listsFile != "" {
		var err error
		if lists, err = enrich.LoadLists(listsFile); err != nil {
			return err
		}
	}

	prices, err := pricing.Load(pricingFile)
	if err != nil {
		return err
	}

	httpCfg := types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent}
	resolver := &resolve.Resolver{
		Client: runware.NewClient(types.ResolveConfig{
			HTTPConfig: httpCfg,
			APIKey:     apiKey,
			Limit:      limit,
		}),
		Limit: limit,
	}
	scrapeCfg := types.ScrapeConfig{HTTPConfig: types.HTTPConfig{Timeout: timeout}}
	scrapeClient := scrape.NewHTTPClient(scrapeCfg)

	ctx := cmd.Context()
	w := cmd.ErrOrStderr()
	today := time.Now().Format("2006-01-02")
	var summary []string

	// Hand-curated popular list.
	records := enrich.Models(ctx, resolver, prices,
		enrich.CuratedEntries(lists.PopularModels), enrich.ByName(),
		enrich.CuratedCollectionName, w)

	catalogPath := filepath.Join(outputDir, enrich.CuratedOutputFile)
	catalog := enrich.NewCatalog(enrich.CuratedSource, enrich.CuratedCollectionName, today, records)
	if err := enrich.WriteCatalog(catalogPath, catalog); err != nil {
		return err
	}
	fmt.Fprintf(w, "✓ saved %d models to %s\n", len(records), catalogPath)
	summary = append(summary, fmt.Sprintf("  %s: %d models", enrich.CuratedCollectionName, len(records)))

	// Scraped collections. Each failure skips that collection only.
	for _, col := range lists.Collections {
		fmt.Fprintf(w, "fetching %s...\n", col.URL)

		scraped, err := scrape.Collection(ctx, scrapeClient, col.URL, scrapeCfg)
		if err != nil {
			fmt.Fprintf(w, "✗ error scraping %s: %v\n", col.URL, err)
			continue
		}
		if len(scraped) == 0 {
			fmt.Fprintf(w, "✗ no models found for %s, skipping\n", col.Name)
			continue
		}
		fmt.Fprintf(w, "✓ found %d unique models\n", len(scraped))

		records := enrich.Models(ctx, resolver, prices,
			enrich.ScrapedEntries(scraped), enrich.ByID(), col.Name, w)

		path := filepath.Join(outputDir, col.OutputFile)
		if err := enrich.WriteCatalog(path, enrich.NewCatalog(col.URL, col.Name, today, records)); err != nil {
			fmt.Fprintf(w, "✗ error writing %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(w, "✓ saved %d models to %s\n", len(records), path)
		summary = append(summary, fmt.Sprintf("  %s: %d models", col.Name, len(records)))
	}

	fmt.Fprintln(w, "\nsummary:")
	for _, line := range summary {
		fmt.Fprintln(w, line)
	}
	return nil
}

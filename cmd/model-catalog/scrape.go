// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/model-catalog/internal/scrape"
	"github.com/pdiddy/model-catalog/pkg/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [url]",
	Short: "Extract model entries from a collection page without enrichment",
	Long: `Scrape fetches one collection page and lists the (model_id, name) pairs
the extraction patterns find on it. The extraction keys on anchor links
and nearby headings, so this command is the quickest way to check whether
a page structure change has broken it.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	scrapeCmd.Flags().String("user-agent", "", "override the browser-like User-Agent")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one collection page URL")
	}
	url := args[0]

	timeout, _ := cmd.Flags().GetDuration("timeout")
	userAgent, _ := cmd.Flags().GetString("user-agent")

	cfg := types.ScrapeConfig{HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: userAgent}}
	models, err := scrape.Collection(cmd.Context(), scrape.NewHTTPClient(cfg), url, cfg)
	if err != nil {
		return fmt.Errorf("scraping %s: %w", url, err)
	}

	out := cmd.OutOrStdout()
	if len(models) == 0 {
		fmt.Fprintln(out, "No models found in page.")
		return nil
	}

	fmt.Fprintf(out, "%-40s  %s\n", "Model ID", "Name")
	for _, m := range models {
		fmt.Fprintf(out, "%-40s  %s\n", m.ModelID, m.Name)
	}
	fmt.Fprintf(out, "\n%d unique models\n", len(models))
	return nil
}

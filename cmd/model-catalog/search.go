// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/model-catalog/internal/runware"
	"github.com/pdiddy/model-catalog/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Query the catalog API for models matching a name",
	Long: `Search issues a single modelSearch request against the catalog API and
prints the raw candidates in API order. Useful for checking what the
resolver has to work with for a given name.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("api-key", "", "catalog API key (overrides env and .secrets/)")
	searchCmd.Flags().Int("limit", defaultLimit, "maximum number of results to return")
	searchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a model name to search for")
	}
	term := strings.Join(args, " ")

	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	apiKey := resolveAPIKey(apiKeyFlag)
	if apiKey == "" {
		return fmt.Errorf("catalog API key not configured: set --api-key, MODEL_CATALOG_API_KEY, or .secrets/runware-api-key")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	asJSON, _ := cmd.Flags().GetBool("json")

	client := runware.NewClient(types.ResolveConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
		APIKey:     apiKey,
	})

	results, err := client.Search(cmd.Context(), term, limit)
	if err != nil {
		return fmt.Errorf("searching %q: %w", term, err)
	}

	if asJSON {
		return runware.FormatJSON(results, cmd.OutOrStdout())
	}
	runware.FormatTable(results, cmd.OutOrStdout())
	return nil
}

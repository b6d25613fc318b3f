// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/model-catalog/internal/store"
	"github.com/pdiddy/model-catalog/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Index written catalogs into SQLite and query them",
	Long: `Store ingests the catalog JSON files a fetch run wrote into a SQLite
database with a full-text index, and supports queries by text, category,
tag, or collection. The index is derived from the files; re-running fetch
and then store brings it up to date.`,
	RunE: runStore,
}

func init() {
	storeCmd.Flags().String("data-dir", "data", "directory containing catalog JSON files")
	storeCmd.Flags().Int("max-results", 20, "maximum number of query results")
	storeCmd.Flags().String("query", "", "full-text search over names and tags")
	storeCmd.Flags().String("category", "", "filter by API category")
	storeCmd.Flags().String("tag", "", "filter by tag")
	storeCmd.Flags().String("collection", "", "filter by collection name")
	storeCmd.Flags().Bool("json", false, "output query results as JSON")

	rootCmd.AddCommand(storeCmd)
}

func runStore(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	s, err := store.New(types.StoreConfig{DataDir: dataDir, MaxResults: maxResults})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if _, err := s.Ingest(ctx, cmd.ErrOrStderr()); err != nil {
		return err
	}

	opts := store.QueryOptions{MaxResults: maxResults}
	opts.Query, _ = cmd.Flags().GetString("query")
	opts.Category, _ = cmd.Flags().GetString("category")
	opts.Tag, _ = cmd.Flags().GetString("tag")
	opts.Collection, _ = cmd.Flags().GetString("collection")

	if opts.IsEmpty() {
		return nil
	}

	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No matching models.")
		return nil
	}
	fmt.Fprintf(out, "%-28s  %-32s  %-12s  %s\n", "AIR", "Name", "Category", "Collection")
	for _, r := range results {
		fmt.Fprintf(out, "%-28s  %-32s  %-12s  %s\n", r.AIR, r.Name, r.Category, r.Collection)
	}
	fmt.Fprintf(out, "\n%d results\n", len(results))
	return nil
}

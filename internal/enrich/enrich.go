// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich resolves input model lists against the catalog API,
// attaches pricing, and writes the merged catalog files.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/model-catalog/internal/pricing"
	"github.com/pdiddy/model-catalog/internal/resolve"
	"github.com/pdiddy/model-catalog/pkg/types"
)

// Entry is one input model, either curated (Name, optional Creator) or
// scraped (ModelID, Name).
type Entry struct {
	ModelID string
	Name    string
	Creator string
}

// Strategy injects the name-resolution policy for a list kind: which key
// to search first, which to fall back to, and what the output record is
// named. Curated and scraped lists share one enrichment loop and differ
// only here.
type Strategy struct {
	// Primary returns the first search key for an entry.
	Primary func(Entry) string

	// Fallback returns a second key tried when the primary finds
	// nothing, or "" for none.
	Fallback func(Entry) string

	// Hint returns the creator hint passed to resolution, or "".
	Hint func(Entry) string

	// PreferResolvedName makes the output record (and the pricing
	// lookup) use the API's name over the entry's own.
	PreferResolvedName bool
}

// ByName is the strategy for hand-curated lists: search the given name
// with the creator hint and keep the curated name on the record.
func ByName() Strategy {
	return Strategy{
		Primary:  func(e Entry) string { return e.Name },
		Fallback: func(Entry) string { return "" },
		Hint:     func(e Entry) string { return e.Creator },
	}
}

// ByID is the strategy for scraped lists: search the scraped display name
// first, fall back to the raw identifier, and prefer the API's name.
func ByID() Strategy {
	return Strategy{
		Primary:            func(e Entry) string { return e.Name },
		Fallback:           func(e Entry) string { return e.ModelID },
		Hint:               func(Entry) string { return "" },
		PreferResolvedName: true,
	}
}

// CuratedEntries adapts a curated model list to enrichment input.
func CuratedEntries(models []types.CuratedModel) []Entry {
	entries := make([]Entry, len(models))
	for i, m := range models {
		entries[i] = Entry{Name: m.Name, Creator: m.Creator}
	}
	return entries
}

// ScrapedEntries adapts a scraped model list to enrichment input.
func ScrapedEntries(models []types.ScrapedModel) []Entry {
	entries := make([]Entry, len(models))
	for i, m := range models {
		entries[i] = Entry{ModelID: m.ModelID, Name: m.Name}
	}
	return entries
}

// Models resolves each entry and returns one record per resolved entry,
// in input order. Entries that resolve to nothing are dropped, never
// written with a null identifier. Per-entry failures are reported on w
// and do not stop the loop.
func Models(ctx context.Context, r *resolve.Resolver, prices pricing.Table, entries []Entry, strat Strategy, listName string, w io.Writer) []types.CatalogRecord {
	records := make([]types.CatalogRecord, 0, len(entries))
	fmt.Fprintf(w, "fetching details for %s (%d models)\n", listName, len(entries))

	for i, e := range entries {
		fmt.Fprintf(w, "  [%d/%d] %s... ", i+1, len(entries), e.Name)

		resolved := resolveEntry(ctx, r, e, strat, w)
		if resolved == nil {
			name := e.Name
			if rec, ok := prices.Match(name); ok {
				fmt.Fprintf(w, "✗ skipped (no AIR, %s)\n", priceLabel(rec))
			} else {
				fmt.Fprintf(w, "✗ skipped (no AIR)\n")
			}
			continue
		}

		record := buildRecord(e, resolved, strat)

		priceKey := record.Name
		if rec, ok := prices.Match(priceKey); ok {
			record.PriceUSD = rec.PriceUSD
			record.PriceConfiguration = rec.Configuration
			record.PriceDiscount = rec.Discount
			fmt.Fprintf(w, "✓ %s (%s)\n", resolved.AIR, priceLabel(rec))
		} else {
			fmt.Fprintf(w, "✓ %s\n", resolved.AIR)
		}

		records = append(records, record)
	}
	return records
}

// resolveEntry tries the strategy's primary key, then its fallback. Any
// resolution error counts as no match for this entry.
func resolveEntry(ctx context.Context, r *resolve.Resolver, e Entry, strat Strategy, w io.Writer) *types.ResolvedModel {
	for _, key := range []string{strat.Primary(e), strat.Fallback(e)} {
		if key == "" {
			continue
		}
		resolved, err := r.Resolve(ctx, key, strat.Hint(e))
		if err != nil {
			fmt.Fprintf(w, "(search %q failed: %v) ", key, err)
			continue
		}
		if resolved != nil {
			return resolved
		}
	}
	return nil
}

func buildRecord(e Entry, resolved *types.ResolvedModel, strat Strategy) types.CatalogRecord {
	name := e.Name
	if strat.PreferResolvedName && resolved.Name != "" {
		name = resolved.Name
	}

	tags := resolved.Tags
	if tags == nil {
		tags = []string{}
	}

	return types.CatalogRecord{
		ModelID:      e.ModelID,
		Name:         name,
		Creator:      e.Creator,
		AIR:          resolved.AIR,
		Category:     resolved.Category,
		Type:         resolved.Type,
		Architecture: resolved.Architecture,
		Tags:         tags,
	}
}

func priceLabel(rec types.PriceRecord) string {
	if rec.PriceUSD == nil {
		return "$N/A"
	}
	return fmt.Sprintf("$%g", *rec.PriceUSD)
}

// NewCatalog assembles the output document for one processed list.
// TotalModels always equals len(records).
func NewCatalog(source, collection, date string, records []types.CatalogRecord) types.Catalog {
	if records == nil {
		records = []types.CatalogRecord{}
	}
	return types.Catalog{
		Source:        source,
		Collection:    collection,
		DateExtracted: date,
		TotalModels:   len(records),
		Models:        records,
	}
}

// WriteCatalog writes the catalog as indented JSON, fully replacing any
// prior file at path. The write goes to a temp file first and renames on
// success so a failed run never leaves a truncated catalog.
func WriteCatalog(path string, catalog types.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(catalog); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

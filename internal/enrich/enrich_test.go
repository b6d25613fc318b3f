// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/model-catalog/internal/pricing"
	"github.com/pdiddy/model-catalog/internal/resolve"
	"github.com/pdiddy/model-catalog/internal/runware"
	"github.com/pdiddy/model-catalog/pkg/types"
)

// fakeSearcher maps search terms to canned candidates.
type fakeSearcher struct {
	results map[string][]runware.ModelResult
	calls   []string
}

func (f *fakeSearcher) Search(_ context.Context, term string, _ int) ([]runware.ModelResult, error) {
	f.calls = append(f.calls, term)
	return f.results[term], nil
}

func exact(name, air string) runware.ModelResult {
	raw, _ := json.Marshal(map[string]string{"name": name, "air": air})
	return runware.ModelResult{Name: name, AIR: air, Category: "checkpoint", Raw: raw}
}

func newResolver(results map[string][]runware.ModelResult) (*resolve.Resolver, *fakeSearcher) {
	fs := &fakeSearcher{results: results}
	return &resolve.Resolver{Client: fs}, fs
}

func TestModelsDropsUnresolvedEntries(t *testing.T) {
	r, _ := newResolver(map[string][]runware.ModelResult{
		"Imagen 4 Fast": {exact("Imagen 4 Fast", "air:imagen")},
		// "Unknown Model" returns nothing.
	})

	var out bytes.Buffer
	entries := []Entry{
		{Name: "Imagen 4 Fast", Creator: "Google"},
		{Name: "Unknown Model"},
	}
	records := Models(context.Background(), r, pricing.Table{}, entries, ByName(), "Popular Models", &out)

	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (unresolved entry dropped)", len(records))
	}
	if records[0].AIR != "air:imagen" {
		t.Errorf("AIR = %q, want air:imagen", records[0].AIR)
	}
	if !strings.Contains(out.String(), "✗ skipped (no AIR)") {
		t.Errorf("progress output should mark the dropped entry: %q", out.String())
	}
}

func TestModelsCuratedKeepsOwnNameAndCreator(t *testing.T) {
	r, _ := newResolver(map[string][]runware.ModelResult{
		"FLUX.2 [dev]": {exact("FLUX.2 [dev]", "air:flux")},
	})

	records := Models(context.Background(), r, pricing.Table{},
		[]Entry{{Name: "FLUX.2 [dev]", Creator: "Black Forest Labs"}},
		ByName(), "Popular Models", &bytes.Buffer{})

	if len(records) != 1 {
		t.Fatal("expected one record")
	}
	rec := records[0]
	if rec.Name != "FLUX.2 [dev]" || rec.Creator != "Black Forest Labs" {
		t.Errorf("record = %+v, want curated name and creator kept", rec)
	}
	if rec.ModelID != "" {
		t.Errorf("ModelID = %q, want empty for curated entries", rec.ModelID)
	}
}

func TestModelsScrapedFallsBackToIdentifier(t *testing.T) {
	r, fs := newResolver(map[string][]runware.ModelResult{
		// Scraped display name finds nothing; raw identifier does.
		"z-image-turbo": {exact("Z-Image-Turbo", "air:zimage")},
	})

	records := Models(context.Background(), r, pricing.Table{},
		[]Entry{{ModelID: "z-image-turbo", Name: "Unmatchable Display Name"}},
		ByID(), "Best for Text on Images", &bytes.Buffer{})

	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.ModelID != "z-image-turbo" {
		t.Errorf("ModelID = %q, want scraped identifier kept", rec.ModelID)
	}
	if rec.Name != "Z-Image-Turbo" {
		t.Errorf("Name = %q, want the API's name preferred", rec.Name)
	}
	if fs.calls[0] != "Unmatchable Display Name" {
		t.Errorf("first search = %q, want the scraped display name first", fs.calls[0])
	}
}

func TestModelsAttachesPricing(t *testing.T) {
	r, _ := newResolver(map[string][]runware.ModelResult{
		"FLUX.2 [dev]": {exact("FLUX.2 [dev]", "air:flux")},
	})
	price := 0.025
	prices := pricing.Table{"flux.2 dev": {PriceUSD: &price, Configuration: "1024x1024"}}

	var out bytes.Buffer
	records := Models(context.Background(), r, prices,
		[]Entry{{Name: "FLUX.2 [dev]", Creator: "Black Forest Labs"}},
		ByName(), "Popular Models", &out)

	if len(records) != 1 {
		t.Fatal("expected one record")
	}
	rec := records[0]
	if rec.PriceUSD == nil || *rec.PriceUSD != 0.025 {
		t.Errorf("PriceUSD = %v, want 0.025 via bracket-stripped match", rec.PriceUSD)
	}
	if rec.PriceConfiguration != "1024x1024" {
		t.Errorf("PriceConfiguration = %v", rec.PriceConfiguration)
	}
	if !strings.Contains(out.String(), "$0.025") {
		t.Errorf("progress output should report the price: %q", out.String())
	}
}

func TestNewCatalogTotalMatchesLen(t *testing.T) {
	records := []types.CatalogRecord{
		{Name: "A", AIR: "air:a", Tags: []string{}},
		{Name: "B", AIR: "air:b", Tags: []string{}},
	}
	c := NewCatalog("https://example.com", "Test", "2026-08-30", records)
	if c.TotalModels != len(c.Models) {
		t.Errorf("TotalModels = %d, len(Models) = %d", c.TotalModels, len(c.Models))
	}

	empty := NewCatalog("https://example.com", "Empty", "2026-08-30", nil)
	if empty.TotalModels != 0 || empty.Models == nil {
		t.Errorf("empty catalog = %+v, want zero total and non-nil list", empty)
	}
}

func TestWriteCatalogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "popular_models.json")

	catalog := NewCatalog("https://runware.ai/models", "Popular Models", "2026-08-30",
		[]types.CatalogRecord{{Name: "FLUX.2 [dev]", AIR: "air:flux", Tags: []string{"text"}}})

	if err := WriteCatalog(path, catalog); err != nil {
		t.Fatalf("WriteCatalog() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Human-formatted: indented.
	if !strings.Contains(string(data), "\n  \"source\"") {
		t.Errorf("output should be indented JSON:\n%s", data)
	}

	var got types.Catalog
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("written catalog is not valid JSON: %v", err)
	}
	if got.TotalModels != 1 || got.Models[0].AIR != "air:flux" {
		t.Errorf("round-tripped catalog = %+v", got)
	}

	// A second write fully replaces the file.
	if err := WriteCatalog(path, NewCatalog("s", "c", "2026-08-31", nil)); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if strings.Contains(string(data), "air:flux") {
		t.Error("rewrite should fully replace prior contents")
	}
}

func TestWriteCatalogDeterministicBytes(t *testing.T) {
	dir := t.TempDir()
	catalog := NewCatalog("src", "col", "2026-08-30",
		[]types.CatalogRecord{{Name: "A", AIR: "air:a", Tags: []string{}}})

	p1 := filepath.Join(dir, "one.json")
	p2 := filepath.Join(dir, "two.json")
	if err := WriteCatalog(p1, catalog); err != nil {
		t.Fatal(err)
	}
	if err := WriteCatalog(p2, catalog); err != nil {
		t.Fatal(err)
	}

	b1, _ := os.ReadFile(p1)
	b2, _ := os.ReadFile(p2)
	if !bytes.Equal(b1, b2) {
		t.Error("identical catalogs should serialize to identical bytes")
	}
}

func TestLoadListsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.yaml")
	if err := os.WriteFile(path, []byte("collections:\n  - name: Only One\n    url: https://example.com/c\n    output_file: one.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lists, err := LoadLists(path)
	if err != nil {
		t.Fatalf("LoadLists() error = %v", err)
	}
	if len(lists.Collections) != 1 || lists.Collections[0].Name != "Only One" {
		t.Errorf("Collections = %+v, want the override", lists.Collections)
	}
	// Omitted section keeps the compiled-in default.
	if len(lists.PopularModels) != len(DefaultCuratedModels) {
		t.Errorf("PopularModels = %d entries, want default list", len(lists.PopularModels))
	}
}

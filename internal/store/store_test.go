// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/model-catalog/pkg/types"
)

func writeCatalogFile(t *testing.T, dir, name string, catalog types.Catalog) string {
	t.Helper()
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func price(v float64) *float64 { return &v }

func sampleCatalog() types.Catalog {
	return types.Catalog{
		Source:        "https://runware.ai/models",
		Collection:    "Popular Models",
		DateExtracted: "2026-08-30",
		TotalModels:   2,
		Models: []types.CatalogRecord{
			{
				Name:         "FLUX.2 [dev]",
				Creator:      "Black Forest Labs",
				AIR:          "air:flux-dev",
				Category:     "checkpoint",
				Architecture: "flux2",
				Tags:         []string{"photorealism", "text"},
				PriceUSD:     price(0.025),
			},
			{
				Name:     "Imagen 4 Fast",
				Creator:  "Google",
				AIR:      "air:imagen-fast",
				Category: "checkpoint",
				Tags:     []string{},
			},
		},
	}
}

func newTestStore(t *testing.T, dataDir string) *Store {
	t.Helper()
	s, err := New(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestIngestAndRetrieve(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "popular_models.json", sampleCatalog())

	s := newTestStore(t, dir)

	summary, err := s.Ingest(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if summary.Indexed != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want one indexed file", summary)
	}

	results, err := s.Retrieve(context.Background(), QueryOptions{Collection: "Popular Models"})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	// Filter-only queries sort by collection then name.
	if results[0].Name != "FLUX.2 [dev]" {
		t.Errorf("results[0].Name = %q", results[0].Name)
	}
	if results[0].PriceUSD == nil || *results[0].PriceUSD != 0.025 {
		t.Errorf("PriceUSD = %v, want 0.025", results[0].PriceUSD)
	}
	if results[1].PriceUSD != nil {
		t.Errorf("PriceUSD = %v, want nil for unpriced model", results[1].PriceUSD)
	}
}

func TestRetrieveFullText(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "popular_models.json", sampleCatalog())

	s := newTestStore(t, dir)
	if _, err := s.Ingest(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	results, err := s.Retrieve(context.Background(), QueryOptions{Query: "photorealism"})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(results) != 1 || results[0].AIR != "air:flux-dev" {
		t.Fatalf("results = %+v, want the tagged model", results)
	}
}

func TestRetrieveTagFilter(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "popular_models.json", sampleCatalog())

	s := newTestStore(t, dir)
	if _, err := s.Ingest(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	results, err := s.Retrieve(context.Background(), QueryOptions{Tag: "text"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].AIR != "air:flux-dev" {
		t.Errorf("results = %+v, want only the text-tagged model", results)
	}
}

func TestIngestSkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "popular_models.json", sampleCatalog())

	s := newTestStore(t, dir)
	if _, err := s.Ingest(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	summary, err := s.Ingest(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 || summary.Indexed != 0 {
		t.Errorf("summary = %+v, want the unchanged file skipped", summary)
	}
}

func TestIngestReplacesChangedCatalog(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalogFile(t, dir, "popular_models.json", sampleCatalog())

	s := newTestStore(t, dir)
	if _, err := s.Ingest(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	// Rewrite with one model and bump the mod time.
	smaller := sampleCatalog()
	smaller.Models = smaller.Models[:1]
	smaller.TotalModels = 1
	writeCatalogFile(t, dir, "popular_models.json", smaller)
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Ingest(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	results, err := s.Retrieve(context.Background(), QueryOptions{Collection: "Popular Models"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("len(results) = %d, want prior rows replaced", len(results))
	}
}

func TestIngestIgnoresNonCatalogJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pricing.json"), []byte(`{"models": [{"name": "x"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := newTestStore(t, dir)
	summary, err := s.Ingest(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Indexed != 0 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want non-catalog file skipped without error", summary)
	}
}

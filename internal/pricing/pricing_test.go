// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pricing

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pricing.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const samplePricingJSON = `{
  "models": [
    {"name": "FLUX.2 dev", "price_usd": 0.025, "configuration": "1024x1024"},
    {"name": "Imagen 4 Fast", "price_usd": 0.02},
    {"name": "Seedream 4.5", "price_usd": 0.03, "discount": "20%"},
    {"name": "  Nano Banana Pro  ", "price_usd": 0.04}
  ]
}`

func TestLoad(t *testing.T) {
	table, err := Load(writeTable(t, samplePricingJSON))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(table) != 4 {
		t.Fatalf("len(table) = %d, want 4", len(table))
	}
	// Keys are normalized: lowercased and trimmed.
	rec, ok := table["nano banana pro"]
	if !ok {
		t.Fatal("expected normalized key 'nano banana pro'")
	}
	if rec.PriceUSD == nil || *rec.PriceUSD != 0.04 {
		t.Errorf("PriceUSD = %v, want 0.04", rec.PriceUSD)
	}
}

func TestLoadMissingFile(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if len(table) != 0 {
		t.Errorf("len(table) = %d, want 0", len(table))
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeTable(t, "{not json"))
	if err == nil {
		t.Fatal("Load() should fail on malformed JSON")
	}
}

func TestLoadDuplicatesOverwrite(t *testing.T) {
	table, err := Load(writeTable(t, `{
  "models": [
    {"name": "Imagen 4", "price_usd": 0.01},
    {"name": "imagen 4", "price_usd": 0.09}
  ]
}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	rec, ok := table["imagen 4"]
	if !ok {
		t.Fatal("expected key 'imagen 4'")
	}
	if *rec.PriceUSD != 0.09 {
		t.Errorf("PriceUSD = %v, want the later entry's 0.09", *rec.PriceUSD)
	}
}

func TestMatchExactStoredNames(t *testing.T) {
	table, err := Load(writeTable(t, samplePricingJSON))
	if err != nil {
		t.Fatal(err)
	}
	// Every stored name must match itself.
	for key := range table {
		if _, ok := table.Match(key); !ok {
			t.Errorf("Match(%q) = no match, want the stored record", key)
		}
	}
}

func TestMatchVariants(t *testing.T) {
	table := Table{
		"flux.2 dev":    {PriceUSD: f(0.025)},
		"qwen image":    {PriceUSD: f(0.01)},
		"imagen 4 fast": {PriceUSD: f(0.02)},
		"midjourney v7": {PriceUSD: f(0.05)},
	}

	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{"bracket stripping", "FLUX.2 [dev]", 0.025},
		{"hyphens as spaces", "Qwen-Image", 0.01},
		{"parenthetical suffix stripped", "Imagen 4 Fast (preview)", 0.02},
		{"case and whitespace", "  MIDJOURNEY V7 ", 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := table.Match(tt.query)
			if !ok {
				t.Fatalf("Match(%q) = no match", tt.query)
			}
			if *rec.PriceUSD != tt.want {
				t.Errorf("Match(%q).PriceUSD = %v, want %v", tt.query, *rec.PriceUSD, tt.want)
			}
		})
	}
}

func TestMatchPartial(t *testing.T) {
	table := Table{
		"seedream 4.5 standard": {PriceUSD: f(0.03)},
	}

	// "seedream 4.5" is contained in the key and shares 2 of its 2 words.
	if _, ok := table.Match("Seedream 4.5"); !ok {
		t.Error("contained name with full word overlap should match")
	}
}

func TestMatchPartialRejectedBelowThreshold(t *testing.T) {
	table := Table{
		"gpt image 1.5": {PriceUSD: f(0.07)},
	}

	// "age 1" is a raw substring of "gpt image 1.5" but shares none of
	// its whitespace-split words, so the 60% rule rejects it.
	if _, ok := table.Match("age 1"); ok {
		t.Error("containment without word overlap should not match")
	}

	// No containment in either direction: never reaches the word check.
	if _, ok := table.Match("gpt video turbo"); ok {
		t.Error("non-contained name should not match")
	}
}

func TestMatchEmptyTable(t *testing.T) {
	var table Table
	if _, ok := table.Match("anything"); ok {
		t.Error("empty table should never match")
	}
}

func f(v float64) *float64 { return &v }

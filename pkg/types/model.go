// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the model-catalog pipeline.
package types

// CuratedModel is a hand-authored entry on the popular-models list.
type CuratedModel struct {
	// Name is the display name used to search the catalog API.
	Name string `json:"name" yaml:"name"`

	// Creator is an optional hint used to break ties between candidates
	// (e.g. "Black Forest Labs").
	Creator string `json:"creator,omitempty" yaml:"creator,omitempty"`
}

// ScrapedModel is an entry extracted from a collection web page.
type ScrapedModel struct {
	// ModelID is the path segment of the model detail link on the page.
	ModelID string `json:"model_id" yaml:"model_id"`

	// Name is the display name found next to the link, or a readable
	// fallback synthesized from ModelID.
	Name string `json:"name" yaml:"name"`
}

// ResolvedModel holds the catalog API attributes for a matched model.
type ResolvedModel struct {
	// AIR is the provider-issued unique identifier. Opaque; never parsed.
	AIR string `json:"air" yaml:"air"`

	Name         string   `json:"name" yaml:"name"`
	Category     string   `json:"category" yaml:"category"`
	Type         string   `json:"type" yaml:"type"`
	Architecture string   `json:"architecture" yaml:"architecture"`
	Tags         []string `json:"tags" yaml:"tags"`
}

// CatalogRecord is one enriched model in an output catalog. It merges the
// input entry, the resolved API attributes, and any matched pricing.
// Records are written only when resolution produced an AIR.
type CatalogRecord struct {
	// ModelID is set for scraped entries only.
	ModelID string `json:"model_id,omitempty"`

	Name    string `json:"name"`
	Creator string `json:"creator,omitempty"`

	AIR          string   `json:"air"`
	Category     string   `json:"category"`
	Type         string   `json:"type"`
	Architecture string   `json:"architecture"`
	Tags         []string `json:"tags"`

	PriceUSD           *float64 `json:"price_usd,omitempty"`
	PriceConfiguration any      `json:"price_configuration,omitempty"`
	PriceDiscount      any      `json:"price_discount,omitempty"`
}

// Catalog is the on-disk output document for one processed list. It is
// rewritten in full on every run; no prior state is merged.
type Catalog struct {
	// Source is the page or list the entries came from.
	Source string `json:"source"`

	// Collection is the human-readable list name (e.g. "Popular Models").
	Collection string `json:"collection"`

	// DateExtracted is the run date in YYYY-MM-DD.
	DateExtracted string `json:"date_extracted"`

	// TotalModels always equals len(Models).
	TotalModels int `json:"total_models"`

	Models []CatalogRecord `json:"models"`
}

// Collection describes a provider collection page to scrape and the file
// its enriched catalog is written to.
type Collection struct {
	Name       string `json:"name" yaml:"name"`
	URL        string `json:"url" yaml:"url"`
	OutputFile string `json:"output_file" yaml:"output_file"`
}

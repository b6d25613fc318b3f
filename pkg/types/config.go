// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResolveConfig holds settings for catalog API search and resolution.
type ResolveConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the catalog API bearer credential. Required.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Limit is the per-request result count sent to the search endpoint
	// (default 20).
	Limit int `json:"limit" yaml:"limit"`

	// MaxRetries bounds retry attempts on rate-limited requests.
	// Zero uses the httputil default.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ScrapeConfig holds settings for collection page scraping.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`
}

// FetchConfig groups all settings for a full pipeline run.
type FetchConfig struct {
	Resolve ResolveConfig `json:"resolve" yaml:"resolve"`
	Scrape  ScrapeConfig  `json:"scrape" yaml:"scrape"`

	// PricingFile is the local price table path. A missing file is not
	// an error; pricing enrichment is simply skipped.
	PricingFile string `json:"pricing_file" yaml:"pricing_file"`

	// OutputDir is the directory catalog JSON files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// StoreConfig holds settings for the catalog index stage.
type StoreConfig struct {
	// DataDir is the directory containing written catalog JSON files.
	// The SQLite index lives in DataDir/index/.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

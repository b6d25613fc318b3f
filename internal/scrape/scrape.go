// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape extracts model entries from provider collection pages.
// Extraction keys on anchor links to the model detail path and nearby
// heading text; it is brittle to page structure changes, which is an
// accepted limitation.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/pdiddy/model-catalog/pkg/types"
)

// BrowserUserAgent is sent with scrape requests to avoid basic bot
// blocking on the collection pages.
const BrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// linkPattern matches anchors to the model detail path and captures the
// model identifier.
var linkPattern = regexp.MustCompile(`<a href="/models/([^"]+)">`)

// Collection fetches url and returns the model entries found on it,
// deduplicated by identifier in first-seen order. Entries whose link has
// no heading text within the pattern's reach get a readable name
// synthesized from the identifier.
func Collection(ctx context.Context, client *http.Client, url string, cfg types.ScrapeConfig) ([]types.ScrapedModel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = BrowserUserAgent
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	return Extract(string(html)), nil
}

// Extract pulls (identifier, name) pairs out of a collection page's HTML.
// A page with no matching anchors yields an empty list.
func Extract(html string) []types.ScrapedModel {
	var models []types.ScrapedModel
	seen := make(map[string]bool)

	for _, m := range linkPattern.FindAllStringSubmatch(html, -1) {
		modelID := m[1]
		if seen[modelID] {
			continue
		}
		seen[modelID] = true

		name := headingNear(html, modelID)
		if name == "" {
			name = FallbackName(modelID)
		}

		models = append(models, types.ScrapedModel{
			ModelID: modelID,
			Name:    name,
		})
	}
	return models
}

// headingNear finds the first h3 heading after the model's anchor. The
// lazy pattern crosses intermediate markup, so a heading-less card at the
// end of a page falls through to the synthesized name while one mid-page
// may pick up the next card's heading. That mirrors the accepted
// brittleness of pattern-based extraction.
func headingNear(html, modelID string) string {
	pattern := fmt.Sprintf(
		`(?s)<a href="/models/%s">[^<]*(?:<[^>]+>[^<]*)*?<h3[^>]*>([^<]+)</h3>`,
		regexp.QuoteMeta(modelID),
	)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ""
	}
	if m := re.FindStringSubmatch(html); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// FallbackName converts a model identifier into a readable display name:
// hyphens become spaces and each word is title-cased.
func FallbackName(modelID string) string {
	words := strings.Fields(strings.ReplaceAll(modelID, "-", " "))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// NewHTTPClient builds the client used for scrape requests.
func NewHTTPClient(cfg types.ScrapeConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

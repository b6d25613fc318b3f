// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pricing loads the local price table and matches free-text model
// names against it.
package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pdiddy/model-catalog/pkg/types"
)

// Table maps normalized model names (lowercased, trimmed) to price records.
// Read-only after Load; safe to share across the run.
type Table map[string]types.PriceRecord

// priceFile mirrors the price table document on disk.
type priceFile struct {
	Models []priceEntry `json:"models"`
}

type priceEntry struct {
	Name          string   `json:"name"`
	PriceUSD      *float64 `json:"price_usd"`
	Configuration any      `json:"configuration"`
	Discount      any      `json:"discount"`
}

// Load reads the price table from path. A missing file is not an error and
// yields an empty table. Duplicate normalized names overwrite earlier
// entries silently.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return nil, fmt.Errorf("reading price table %s: %w", path, err)
	}

	var pf priceFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing price table %s: %w", path, err)
	}

	table := make(Table, len(pf.Models))
	for _, m := range pf.Models {
		name := strings.ToLower(strings.TrimSpace(m.Name))
		if name == "" {
			continue
		}
		table[name] = types.PriceRecord{
			PriceUSD:      m.PriceUSD,
			Configuration: m.Configuration,
			Discount:      m.Discount,
		}
	}
	return table, nil
}

// Match finds the price record for a free-text model name. It tries the
// normalized name, then a fixed set of rewritten variants, then a partial
// match against every stored key. The partial step is heuristic and can
// produce false positives on short or generic names; callers accept that.
func (t Table) Match(name string) (types.PriceRecord, bool) {
	if len(t) == 0 {
		return types.PriceRecord{}, false
	}

	lower := strings.ToLower(strings.TrimSpace(name))
	if rec, ok := t[lower]; ok {
		return rec, true
	}

	for _, v := range matchVariants(lower) {
		if rec, ok := t[v]; ok {
			return rec, true
		}
	}

	// Partial match: substring containment in either direction, accepted
	// only when enough words are shared. Keys are visited in sorted order
	// so repeated runs pick the same record.
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.Contains(lower, key) && !strings.Contains(key, lower) {
			continue
		}
		if sharedWordRatioOK(lower, key) {
			return t[key], true
		}
	}

	return types.PriceRecord{}, false
}

// matchVariants returns the rewritten forms tried after an exact lookup
// misses: brackets stripped, middle dots stripped, hyphens as spaces, and
// any parenthetical suffix removed.
func matchVariants(lower string) []string {
	return []string{
		strings.ReplaceAll(strings.ReplaceAll(lower, "[", ""), "]", ""),
		strings.TrimSpace(strings.ReplaceAll(lower, "·", "")),
		strings.ReplaceAll(lower, "-", " "),
		strings.TrimSpace(strings.SplitN(lower, "(", 2)[0]),
	}
}

// sharedWordRatioOK reports whether at least 60% of the smaller name's
// words appear in the other name. The threshold is a tuning constant that
// downstream output depends on; do not adjust it.
func sharedWordRatioOK(a, b string) bool {
	aWords := wordSet(a)
	bWords := wordSet(b)

	common := 0
	for w := range aWords {
		if _, ok := bWords[w]; ok {
			common++
		}
	}

	smaller := len(aWords)
	if len(bWords) < smaller {
		smaller = len(bWords)
	}
	return float64(common) >= float64(smaller)*0.6
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

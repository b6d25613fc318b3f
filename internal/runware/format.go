// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runware

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatTable writes search results as a human-readable table to w.
func FormatTable(results []ModelResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %-28s  %-12s  %s\n",
		"Rank", "Name", "AIR", "Category", "Architecture")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-40s  %-28s  %-12s  %s\n",
			i+1, truncate(r.Name, 40), truncate(r.AIR, 28), truncate(r.Category, 12), r.Architecture)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes search results as indented JSON to w, preserving
// every field the API returned.
func FormatJSON(results []ModelResult, w io.Writer) error {
	raws := make([]json.RawMessage, len(results))
	for i, r := range results {
		raws[i] = r.Raw
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raws)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve matches free-text model names to catalog API entries.
// It searches several spelling variants of a name, scores every returned
// candidate, and accepts the best candidate when its score clears a fixed
// threshold.
package resolve

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/pdiddy/model-catalog/internal/runware"
	"github.com/pdiddy/model-catalog/pkg/types"
)

// Scoring constants. These values are tuning constants that downstream
// output depends on; keep them as-is.
const (
	exactScore     = 100
	substringScore = 80
	wordScore      = 20
	creatorBonus   = 10
	acceptScore    = 40
)

// Searcher is the catalog query dependency. *runware.Client satisfies it;
// tests substitute fakes.
type Searcher interface {
	Search(ctx context.Context, term string, limit int) ([]runware.ModelResult, error)
}

// Resolver resolves names through a Searcher.
type Resolver struct {
	Client Searcher

	// Limit is the per-request result count. Zero lets the client default.
	Limit int
}

// Resolve finds the catalog entry best matching name. The creator hint, if
// non-empty, adds a bonus to candidates that mention it anywhere in their
// serialized fields.
//
// A nil, nil return means no candidate cleared the acceptance threshold.
// An error is returned only for transport or parse failures; callers log
// it and treat the entry as unmatched. A non-success HTTP status on one
// variant just moves on to the next variant.
func (r *Resolver) Resolve(ctx context.Context, name, creator string) (*types.ResolvedModel, error) {
	var best *types.ResolvedModel
	bestScore := 0

	for _, term := range Variants(name) {
		results, err := r.Client.Search(ctx, term, r.Limit)
		if err != nil {
			var se *runware.StatusError
			if errors.As(err, &se) {
				continue
			}
			return nil, err
		}

		for _, c := range results {
			score := scoreCandidate(c, name, term, creator)
			if score > bestScore {
				bestScore = score
				best = toResolved(c)
			}
			// A perfect match ends the search immediately.
			if score >= exactScore {
				return best, nil
			}
		}
	}

	if best != nil && bestScore >= acceptScore {
		return best, nil
	}
	return nil, nil
}

// Variants returns the ordered, de-duplicated spelling variants searched
// for a name: the original, brackets stripped, non-breaking hyphens
// normalized, and any parenthetical suffix removed.
func Variants(name string) []string {
	candidates := []string{
		name,
		strings.ReplaceAll(strings.ReplaceAll(name, "[", ""), "]", ""),
		strings.ReplaceAll(name, "‑", "-"),
		strings.TrimSpace(strings.SplitN(name, "(", 2)[0]),
	}

	var terms []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		terms = append(terms, c)
	}
	return terms
}

// scoreCandidate rates a candidate against the original name and the
// variant that produced it: exact match 100, substring containment 80,
// otherwise 20 per shared word. A creator hint appearing anywhere in the
// candidate's serialized fields adds 10 to a non-zero score.
func scoreCandidate(c runware.ModelResult, original, variant, creator string) int {
	candName := strings.ToLower(c.Name)
	origLower := strings.ToLower(original)
	varLower := strings.ToLower(variant)

	score := 0
	switch {
	case candName == origLower || candName == varLower:
		score = exactScore
	case strings.Contains(candName, varLower) || strings.Contains(varLower, candName):
		score = substringScore
	default:
		score = wordScore * sharedWords(origLower, candName)
	}

	if creator != "" && score > 0 {
		if bytes.Contains(bytes.ToLower(c.Raw), []byte(strings.ToLower(creator))) {
			score += creatorBonus
		}
	}
	return score
}

// sharedWords counts words appearing in both names. Hyphens split words
// the same as whitespace.
func sharedWords(a, b string) int {
	aWords := hyphenWordSet(a)
	bWords := hyphenWordSet(b)

	n := 0
	for w := range aWords {
		if _, ok := bWords[w]; ok {
			n++
		}
	}
	return n
}

func hyphenWordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ReplaceAll(s, "-", " ")) {
		set[w] = struct{}{}
	}
	return set
}

func toResolved(c runware.ModelResult) *types.ResolvedModel {
	return &types.ResolvedModel{
		AIR:          c.AIR,
		Name:         c.Name,
		Category:     c.Category,
		Type:         c.Type,
		Architecture: c.Architecture,
		Tags:         c.Tags,
	}
}

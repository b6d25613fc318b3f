// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over names and tags.
	Query string

	// Category filters by API category (e.g. "checkpoint").
	Category string

	// Tag filters models carrying the given tag.
	Tag string

	// Collection filters by catalog collection name.
	Collection string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Category == "" && q.Tag == "" && q.Collection == ""
}

// QueryResult is one indexed model with its collection context.
type QueryResult struct {
	AIR          string   `json:"air"`
	Name         string   `json:"name"`
	ModelID      string   `json:"model_id,omitempty"`
	Creator      string   `json:"creator,omitempty"`
	Category     string   `json:"category"`
	Type         string   `json:"type"`
	Architecture string   `json:"architecture"`
	Tags         []string `json:"tags"`
	PriceUSD     *float64 `json:"price_usd,omitempty"`
	Collection   string   `json:"collection"`
}

// Retrieve queries the index with optional full-text search and
// structured filters. Full-text queries rank by FTS relevance; filter-only
// queries sort by collection then name.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT m.air, m.name, m.model_id, m.creator, m.category, m.type,
				m.architecture, m.tags, m.price_usd, m.collection
			FROM models_fts
			JOIN models m ON m.rowid = models_fts.rowid
			WHERE models_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT m.air, m.name, m.model_id, m.creator, m.category, m.type,
				m.architecture, m.tags, m.price_usd, m.collection
			FROM models m
			WHERE 1=1`)
	}

	if opts.Category != "" {
		qb.WriteString(` AND m.category = ?`)
		args = append(args, opts.Category)
	}
	if opts.Collection != "" {
		qb.WriteString(` AND m.collection = ?`)
		args = append(args, opts.Collection)
	}
	if opts.Tag != "" {
		// Tags are stored as a JSON array; match the quoted element.
		qb.WriteString(` AND m.tags LIKE ?`)
		args = append(args, `%"`+opts.Tag+`"%`)
	}

	if useFTS {
		qb.WriteString(` ORDER BY models_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY m.collection, m.name`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			r       QueryResult
			tagsRaw string
			price   *float64
		)
		if err := rows.Scan(&r.AIR, &r.Name, &r.ModelID, &r.Creator, &r.Category,
			&r.Type, &r.Architecture, &tagsRaw, &price, &r.Collection); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		if tagsRaw != "" {
			if err := json.Unmarshal([]byte(tagsRaw), &r.Tags); err != nil {
				return nil, fmt.Errorf("parsing tags for %s: %w", r.AIR, err)
			}
		}
		r.PriceUSD = price
		results = append(results, r)
	}
	return results, rows.Err()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runware is a client for the Runware catalog API's modelSearch
// task. Requests are batched task descriptors; this client sends one task
// per request and unwraps the single task's results.
package runware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/model-catalog/internal/httputil"
	"github.com/pdiddy/model-catalog/pkg/types"
)

// apiBase is the catalog API endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://api.runware.ai/v1"

const defaultLimit = 20

// Client issues modelSearch requests against the catalog API.
type Client struct {
	HTTP       *http.Client
	APIKey     string
	UserAgent  string
	MaxRetries int

	// BaseURL overrides the production endpoint when non-empty.
	BaseURL string
}

// NewClient builds a client from resolve settings. The API key must be
// non-empty; callers enforce that at startup.
func NewClient(cfg types.ResolveConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		APIKey:     cfg.APIKey,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
	}
}

// ModelResult is one candidate returned by a modelSearch task. Raw keeps
// the candidate's full serialized form for heuristics that look across
// every field (e.g. the creator-hint bonus).
type ModelResult struct {
	AIR          string
	Name         string
	Category     string
	Type         string
	Architecture string
	Tags         []string
	Raw          json.RawMessage
}

// StatusError reports a non-success HTTP response from the catalog API.
// Resolution treats it as "try the next spelling variant" rather than a
// hard failure.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog API returned HTTP %d", e.Code)
}

// searchTask is the request descriptor for one modelSearch task.
type searchTask struct {
	TaskType string `json:"taskType"`
	TaskUUID string `json:"taskUUID"`
	Search   string `json:"search"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

// Catalog API JSON response structures.
type searchResponse struct {
	Data []taskResult `json:"data"`
}

type taskResult struct {
	Results []json.RawMessage `json:"results"`
}

type modelFields struct {
	AIR          string   `json:"air"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Type         string   `json:"type"`
	Architecture string   `json:"architecture"`
	Tags         []string `json:"tags"`
}

// Search issues one modelSearch task for term and returns the candidates.
// A non-2xx-after-retries response yields a *StatusError; transport and
// parse failures yield ordinary errors. An empty result list is not an
// error.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]ModelResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	body := []searchTask{{
		TaskType: "modelSearch",
		TaskUUID: uuid.NewString(),
		Search:   term,
		Limit:    limit,
		Offset:   0,
	}}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling search task: %w", err)
	}

	base := c.BaseURL
	if base == "" {
		base = apiBase
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("catalog API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing catalog API response: %w", err)
	}
	if len(sr.Data) == 0 {
		return nil, nil
	}

	results := make([]ModelResult, 0, len(sr.Data[0].Results))
	for _, raw := range sr.Data[0].Results {
		var mf modelFields
		if err := json.Unmarshal(raw, &mf); err != nil {
			return nil, fmt.Errorf("parsing model result: %w", err)
		}
		results = append(results, ModelResult{
			AIR:          mf.AIR,
			Name:         mf.Name,
			Category:     mf.Category,
			Type:         mf.Type,
			Architecture: mf.Architecture,
			Tags:         mf.Tags,
			Raw:          raw,
		})
	}
	return results, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store indexes written catalog files into a SQLite database for
// querying. The index is derived data: it reads the pipeline's JSON
// outputs and never feeds back into a fetch run.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/model-catalog/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "catalog.db"
)

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// New opens or creates the catalog database at dataDir/index/catalog.db
// and creates the schema if it does not exist.
func New(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dataDir:    cfg.DataDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS catalogs (
			collection TEXT PRIMARY KEY,
			source TEXT,
			date_extracted TEXT,
			total_models INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS models (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			air TEXT NOT NULL,
			name TEXT NOT NULL,
			model_id TEXT,
			creator TEXT,
			category TEXT,
			type TEXT,
			architecture TEXT,
			tags TEXT,
			price_usd REAL,
			collection TEXT NOT NULL REFERENCES catalogs(collection)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_models_collection ON models(collection)`,
		`CREATE INDEX IF NOT EXISTS idx_models_category ON models(category)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			file TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='models_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE models_fts USING fts5(name, tags, content=models, content_rowid=rowid)`,
			`CREATE TRIGGER models_ai AFTER INSERT ON models BEGIN
				INSERT INTO models_fts(rowid, name, tags) VALUES (new.rowid, new.name, new.tags);
			END`,
			`CREATE TRIGGER models_ad AFTER DELETE ON models BEGIN
				INSERT INTO models_fts(models_fts, rowid, name, tags) VALUES('delete', old.rowid, old.name, old.tags);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an indexing run.
type IngestSummary struct {
	Indexed int
	Skipped int
	Failed  int
}

// Total returns the number of catalog files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Skipped + s.Failed
}

// Ingest reads catalog JSON files from the data directory and populates
// the database. Unchanged files (same mod time as last indexing) are
// skipped; changed catalogs are replaced wholesale, matching the
// overwrite semantics of the files themselves.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading data directory %s: %w", s.dataDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		filePath := filepath.Join(s.dataDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE file = ?`, entry.Name(),
		).Scan(&storedModTime)
		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", entry.Name())
			summary.Skipped++
			continue
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		var catalog types.Catalog
		if err := json.Unmarshal(data, &catalog); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}
		if catalog.Collection == "" {
			fmt.Fprintf(w, "skipped %s (not a catalog file)\n", entry.Name())
			summary.Skipped++
			continue
		}

		if err := s.ingestCatalog(ctx, entry.Name(), &catalog, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "indexed %s (%d models)\n", entry.Name(), len(catalog.Models))
		summary.Indexed++
	}

	fmt.Fprintf(w, "\nindexed: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Skipped, summary.Failed)
	return summary, nil
}

func (s *Store) ingestCatalog(ctx context.Context, file string, catalog *types.Catalog, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM models WHERE collection = ?`, catalog.Collection); err != nil {
		return fmt.Errorf("clearing prior models: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalogs (collection, source, date_extracted, total_models)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(collection) DO UPDATE SET
			source = excluded.source,
			date_extracted = excluded.date_extracted,
			total_models = excluded.total_models`,
		catalog.Collection, catalog.Source, catalog.DateExtracted, catalog.TotalModels); err != nil {
		return fmt.Errorf("upserting catalog: %w", err)
	}

	for _, m := range catalog.Models {
		tags, err := json.Marshal(m.Tags)
		if err != nil {
			return fmt.Errorf("marshaling tags: %w", err)
		}

		var price any
		if m.PriceUSD != nil {
			price = *m.PriceUSD
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO models (air, name, model_id, creator, category, type, architecture, tags, price_usd, collection)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.AIR, m.Name, m.ModelID, m.Creator, m.Category, m.Type,
			m.Architecture, string(tags), price, catalog.Collection); err != nil {
			return fmt.Errorf("inserting model %s: %w", m.AIR, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO indexing_status (file, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(file) DO UPDATE SET file_mod_time = excluded.file_mod_time`,
		file, modTime); err != nil {
		return fmt.Errorf("recording indexing status: %w", err)
	}

	return tx.Commit()
}

// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     corpusstore
// Description: SQLite persistence of ranked documents
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package corpusstore persists a ranked corpus so the covering step can
// stream it back in rank order.
package corpusstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/taletekst/internal/phoneme"
	tterr "github.com/msto63/taletekst/pkg/core/error"
	"github.com/msto63/taletekst/pkg/core/version"
)

// Store is a SQLite-backed ranked document store
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// Config holds store configuration
type Config struct {
	Path string
}

// DefaultConfig returns the default store configuration
func DefaultConfig() Config {
	return Config{Path: "./data/processed/ranked.db"}
}

// Open opens or creates the store
func Open(cfg Config) (*Store, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, tterr.Wrap(err, tterr.CodeStoreError, "failed to create directory").
			WithDetail("dir", dir)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeStoreError, "failed to open database")
	}

	store := &Store{db: db, path: cfg.Path}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, tterr.Wrap(err, tterr.CodeStoreError, "failed to initialize schema")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL UNIQUE,
		text TEXT NOT NULL,
		unique_count INTEGER NOT NULL DEFAULT 0,
		phonemes TEXT,
		annotation TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema', ?)`, version.StoreSchema)
	return err
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Reset removes every stored document
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return tterr.Wrap(err, tterr.CodeStoreError, "failed to reset documents")
	}
	return nil
}

// Insert appends documents after the ones already stored. Their order is
// the rank order returned by Documents.
func (s *Store) Insert(ctx context.Context, docs ...phoneme.RankedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return tterr.Wrap(err, tterr.CodeStoreError, "failed to begin transaction")
	}
	defer tx.Rollback()

	var next int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM documents`).Scan(&next); err != nil {
		return tterr.Wrap(err, tterr.CodeStoreError, "failed to read last position")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, position, text, unique_count, phonemes, annotation)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return tterr.Wrap(err, tterr.CodeStoreError, "failed to prepare document statement")
	}
	defer stmt.Close()

	for i, doc := range docs {
		phonemesJSON, err := json.Marshal(doc.Phonemes)
		if err != nil {
			return tterr.Wrap(err, tterr.CodeStoreError, "failed to encode phonemes")
		}

		var annotationJSON []byte
		if doc.Annotation != nil {
			if annotationJSON, err = json.Marshal(doc.Annotation); err != nil {
				return tterr.Wrap(err, tterr.CodeStoreError, "failed to encode annotation")
			}
		}

		_, err = stmt.ExecContext(ctx, uuid.NewString(), next+int64(i), doc.Text,
			len(doc.Phonemes), string(phonemesJSON), nullString(annotationJSON))
		if err != nil {
			return tterr.Wrap(err, tterr.CodeStoreError, "failed to insert document")
		}
	}

	if err := tx.Commit(); err != nil {
		return tterr.Wrap(err, tterr.CodeStoreError, "failed to commit documents")
	}
	return nil
}

// Count returns the number of stored documents
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, tterr.Wrap(err, tterr.CodeStoreError, "failed to count documents")
	}
	return count, nil
}

// Documents streams the stored documents in rank order. Rows are read
// lazily; stopping the iteration releases the cursor.
func (s *Store) Documents(ctx context.Context) iter.Seq2[phoneme.RankedDocument, error] {
	return func(yield func(phoneme.RankedDocument, error) bool) {
		rows, err := s.db.QueryContext(ctx, `
			SELECT text, phonemes, annotation FROM documents ORDER BY position
		`)
		if err != nil {
			yield(phoneme.RankedDocument{}, tterr.Wrap(err, tterr.CodeStoreError, "failed to query documents"))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var doc phoneme.RankedDocument
			var phonemesJSON, annotationJSON sql.NullString

			if err := rows.Scan(&doc.Text, &phonemesJSON, &annotationJSON); err != nil {
				yield(phoneme.RankedDocument{}, tterr.Wrap(err, tterr.CodeStoreError, "failed to scan row"))
				return
			}
			if phonemesJSON.Valid {
				if err := json.Unmarshal([]byte(phonemesJSON.String), &doc.Phonemes); err != nil {
					yield(phoneme.RankedDocument{}, tterr.Wrap(err, tterr.CodeStoreError, "failed to decode phonemes"))
					return
				}
			}
			if annotationJSON.Valid {
				if err := json.Unmarshal([]byte(annotationJSON.String), &doc.Annotation); err != nil {
					yield(phoneme.RankedDocument{}, tterr.Wrap(err, tterr.CodeStoreError, "failed to decode annotation"))
					return
				}
			}

			if !yield(doc, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(phoneme.RankedDocument{}, tterr.Wrap(err, tterr.CodeStoreError, "failed to iterate documents"))
		}
	}
}

// SetMeta stores a metadata value
func (s *Store) SetMeta(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return tterr.Wrap(err, tterr.CodeStoreError, "failed to store metadata").WithDetail("key", key)
	}
	return nil
}

// Meta returns a metadata value
func (s *Store) Meta(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", tterr.Newf(tterr.CodeNotFound, "metadata not found: %s", key)
	}
	if err != nil {
		return "", tterr.Wrap(err, tterr.CodeStoreError, "failed to read metadata").WithDetail("key", key)
	}
	return value, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func nullString(b []byte) sql.NullString {
	if b == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

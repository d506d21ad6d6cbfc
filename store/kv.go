package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/logger"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// KV stores the document as a single value of a sqlite key-value table, the
// way a browser keeps it in local storage.
type KV struct {
	db   *sql.DB
	path string
	key  string
	log  *logger.Logger
}

// OpenKV opens (or creates) the sqlite database at path and migrates it.
func OpenKV(ctx context.Context, path, key string, log *logger.Logger) (*KV, error) {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.FieldPath, path, logger.FieldKey, key)

	if err := RunMigrations(path); err != nil {
		return nil, err
	}
	log.Debug("schema up to date", logger.FieldOperation, logger.OpMigrate)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite serializes writers anyway.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &KV{db: db, path: path, key: key, log: log}, nil
}

func (s *KV) Name() string { return fmt.Sprintf("kv %s[%s]", s.path, s.key) }

// Close closes the database.
func (s *KV) Close() error { return s.db.Close() }

// Load reads the document stored under the key, writing the default document
// when the key is absent.
func (s *KV) Load(ctx context.Context) (finance.Document, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		doc := finance.DefaultDocument()
		if err := s.Save(ctx, doc); err != nil {
			return finance.Document{}, err
		}
		s.log.Info("default document stored", logger.FieldOperation, logger.OpLoad)
		return doc, nil
	}
	if err != nil {
		return finance.Document{}, fmt.Errorf("query document: %w", err)
	}

	var doc finance.Document
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		return finance.Document{}, fmt.Errorf("malformed document under key %q: %w", s.key, err)
	}
	return doc, nil
}

// Save overwrites the value stored under the key.
func (s *KV) Save(ctx context.Context, doc finance.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cannot encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(data))
	if err != nil {
		return fmt.Errorf("store document: %w", err)
	}
	s.log.Debug("document saved", logger.FieldOperation, logger.OpSave)
	return nil
}

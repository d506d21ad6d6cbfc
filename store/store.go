// Package store implements the persistence backends of the finance tracker.
//
// Every backend stores the whole [finance.Document] at once:
//   - File: a pretty printed JSON file, replaced atomically on save.
//   - KV: a single key of a sqlite key-value table.
//   - Memory: an in-process document, for tests and dry runs.
package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/logger"
)

// Backend is a finance.Store that may hold resources until closed.
type Backend interface {
	finance.Store
	io.Closer
	// Name describes the backend for humans ("file finance-data.json").
	Name() string
}

// Open returns the backend selected by cfg.
//
// The auto backend picks the kv database when it already exists and the JSON
// file otherwise.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (Backend, error) {
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithComponent(logger.ComponentStore)

	backend := cfg.Backend
	if backend == config.BackendAuto {
		backend = config.BackendFile
		if _, err := os.Stat(cfg.KVPath); err == nil {
			backend = config.BackendKV
		}
		log.Debug("backend selected", logger.FieldBackend, backend)
	}

	switch backend {
	case config.BackendFile:
		return NewFile(cfg.DataFile, log), nil
	case config.BackendKV:
		kv, err := OpenKV(ctx, cfg.KVPath, cfg.KVKey, log)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

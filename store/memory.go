package store

import (
	"context"
	"sync"

	"github.com/etnz/finance"
)

// Memory keeps the document in memory.
type Memory struct {
	mu    sync.Mutex
	doc   *finance.Document
	err   error
	saves int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Name() string { return "memory" }
func (m *Memory) Close() error { return nil }

// FailWith makes every following Save return err. A nil err heals the store.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Saves returns the number of successful saves.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Memory) Load(ctx context.Context) (finance.Document, error) {
	if err := ctx.Err(); err != nil {
		return finance.Document{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		doc := finance.DefaultDocument()
		m.doc = &doc
	}
	return m.doc.Clone(), nil
}

func (m *Memory) Save(ctx context.Context, doc finance.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	doc = doc.Clone()
	m.doc = &doc
	m.saves++
	return nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/finance"
	"github.com/etnz/finance/logger"
)

// File stores the document in a JSON file.
type File struct {
	path string
	log  *logger.Logger
}

// NewFile returns a store for the JSON file at path. The file is created on
// first load.
func NewFile(path string, log *logger.Logger) *File {
	if log == nil {
		log = logger.Discard()
	}
	return &File{path: path, log: log.With(logger.FieldPath, path)}
}

func (f *File) Name() string { return "file " + f.path }
func (f *File) Close() error { return nil }

// Load reads the document, writing the default document if the file does not
// exist yet.
func (f *File) Load(ctx context.Context) (finance.Document, error) {
	if err := ctx.Err(); err != nil {
		return finance.Document{}, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := finance.DefaultDocument()
		if err := f.Save(ctx, doc); err != nil {
			return finance.Document{}, err
		}
		f.log.Info("data file created", logger.FieldOperation, logger.OpLoad)
		return doc, nil
	}
	if err != nil {
		return finance.Document{}, fmt.Errorf("cannot read data file: %w", err)
	}

	var doc finance.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return finance.Document{}, fmt.Errorf("malformed data file %q: %w", f.path, err)
	}
	return doc, nil
}

// Save replaces the file content with doc.
//
// The document is written to a temporary file in the same directory, then
// renamed over the data file, so that readers see either version in full.
func (f *File) Save(ctx context.Context, doc finance.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write data file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write data file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("cannot replace data file: %w", err)
	}
	f.log.Debug("document saved", logger.FieldOperation, logger.OpSave)
	return nil
}

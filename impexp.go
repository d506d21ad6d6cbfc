package finance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains the import/export format: the persisted document itself,
// pretty printed so it stays human readable.

// Export writes doc as indented JSON.
func Export(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("cannot export document: %w", err)
	}
	return nil
}

// Import reads a document in the export format.
//
// The "expenses" and "savingGoals" arrays are mandatory, a missing "budget"
// reads as 0. The whole document is validated. Every error wraps
// ErrImportFormat.
func Import(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrImportFormat, err)
	}
	var jdoc any
	if err := json.Unmarshal(data, &jdoc); err != nil {
		return Document{}, fmt.Errorf("%w: not a JSON document: %w", ErrImportFormat, err)
	}
	if _, ok := jdoc.(map[string]any); !ok {
		return Document{}, fmt.Errorf("%w: want a JSON object", ErrImportFormat)
	}

	for _, path := range []string{"$.expenses", "$.savingGoals"} {
		jval, err := jsonpath.Get(path, jdoc)
		if err != nil {
			return Document{}, fmt.Errorf("%w: %s is missing", ErrImportFormat, path)
		}
		if _, ok := jval.([]any); !ok {
			return Document{}, fmt.Errorf("%w: %s is not an array", ErrImportFormat, path)
		}
	}
	if jval, err := jsonpath.Get("$.budget", jdoc); err == nil && jval != nil {
		if _, ok := jval.(float64); !ok {
			return Document{}, fmt.Errorf("%w: $.budget is not a number", ErrImportFormat)
		}
	}

	var doc Document
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrImportFormat, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrImportFormat, err)
	}
	return doc, nil
}

// ImportInto reads a document from r and overwrites the content of store with it.
//
// Nothing is written when the document is invalid. Trackers already opened on
// store are not updated, they must be opened again.
func ImportInto(ctx context.Context, store Store, r io.Reader) (Document, error) {
	doc, err := Import(r)
	if err != nil {
		return Document{}, err
	}
	if err := store.Save(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return doc, nil
}

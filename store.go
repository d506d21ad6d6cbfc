package finance

import "context"

// Store persists the whole Document.
//
// Implementations live in the store package.
type Store interface {
	// Load returns the persisted document. The first call against an empty
	// store synthesizes DefaultDocument, persists it and returns it.
	Load(ctx context.Context) (Document, error)
	// Save overwrites the persisted document as a whole.
	Save(ctx context.Context, doc Document) error
}

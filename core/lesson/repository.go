package lesson

import "context"

// Repository persists a whole lesson document at once.
type Repository interface {
	// Location names the backing document, for messages.
	Location() string
	Exists(ctx context.Context) (bool, error)
	// Load returns ErrNotFound when the document is missing and ErrInvalid when it is unusable.
	Load(ctx context.Context) (Document, error)
	// Save replaces the document. A failed save leaves the previous document in place.
	Save(ctx context.Context, doc Document) error
	// ReadRaw returns the stored bytes untouched, or ErrNotFound.
	ReadRaw(ctx context.Context) ([]byte, error)
	WriteRaw(ctx context.Context, data []byte) error
}

// pkg/docstore/docstore.go
package docstore

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Document is one record in a collection: an opaque ID plus a flat bag of
// JSON-compatible fields.
type Document struct {
	ID        string         `json:"id"`
	Fields    map[string]any `json:"fields"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Field returns a field value and whether it was present.
func (d Document) Field(name string) (any, bool) {
	v, ok := d.Fields[name]
	return v, ok
}

// String returns the named field as a string, or fallback when absent or of
// another type.
func (d Document) String(name, fallback string) string {
	if s, ok := d.Fields[name].(string); ok && s != "" {
		return s
	}
	return fallback
}

// CollectionFunc receives the full current state of a collection every time
// any document in it changes. There is no incremental patching: each call
// replaces the previous snapshot entirely.
type CollectionFunc func(docs []Document)

// DocumentFunc receives the full current state of a single document on every
// change. ok is false when the document does not exist, which is a valid
// state.
type DocumentFunc func(doc Document, ok bool)

// Store is a document store with push-based full-snapshot change
// notifications. Set merges fields into an existing document (creating it if
// needed); Delete of a missing document returns ErrNotFound.
//
// Watch methods deliver an initial snapshot before the first change and then
// run until ctx is cancelled. Callbacks for one watcher are invoked
// sequentially.
type Store interface {
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string) ([]Document, error)

	WatchCollection(ctx context.Context, collection string, fn CollectionFunc) error
	WatchDocument(ctx context.Context, collection, id string, fn DocumentFunc) error
}

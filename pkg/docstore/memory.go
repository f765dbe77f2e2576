// pkg/docstore/memory.go
package docstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store with synchronous snapshot dispatch.
// It backs tests and local development; watchers receive snapshots on the
// goroutine performing the mutation, in registration order.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string][]Document

	dispatchMu sync.Mutex
	watchers   []*memoryWatcher
	nextWatch  int
}

type memoryWatcher struct {
	id         int
	collection string
	notify     func([]Document)
	done       <-chan struct{}
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{collections: map[string][]Document{}}
}

func (s *MemoryStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()
	s.put(collection, id, fields)
	s.broadcast(collection)
	return id, nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	s.put(collection, id, fields)
	s.broadcast(collection)
	return nil
}

func (s *MemoryStore) put(collection, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if doc.ID == id {
			merged := make(map[string]any, len(doc.Fields)+len(fields))
			for k, v := range doc.Fields {
				merged[k] = v
			}
			for k, v := range fields {
				merged[k] = v
			}
			docs[i] = Document{ID: id, Fields: merged, UpdatedAt: time.Now().UTC()}
			return
		}
	}

	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	s.collections[collection] = append(docs, Document{ID: id, Fields: copied, UpdatedAt: time.Now().UTC()})
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	docs := s.collections[collection]
	found := false
	for i, doc := range docs {
		if doc.ID == id {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	s.broadcast(collection)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.collections[collection] {
		if doc.ID == id {
			return doc, nil
		}
	}
	return Document{}, ErrNotFound
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	return s.snapshot(collection), nil
}

func (s *MemoryStore) snapshot(collection string) []Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.collections[collection]
	out := make([]Document, len(docs))
	copy(out, docs)
	return out
}

func (s *MemoryStore) WatchCollection(ctx context.Context, collection string, fn CollectionFunc) error {
	return s.addWatcher(ctx, collection, func(docs []Document) { fn(docs) })
}

func (s *MemoryStore) WatchDocument(ctx context.Context, collection, id string, fn DocumentFunc) error {
	return s.addWatcher(ctx, collection, func(docs []Document) {
		for _, doc := range docs {
			if doc.ID == id {
				fn(doc, true)
				return
			}
		}
		fn(Document{}, false)
	})
}

func (s *MemoryStore) addWatcher(ctx context.Context, collection string, notify func([]Document)) error {
	s.dispatchMu.Lock()
	w := &memoryWatcher{
		id:         s.nextWatch,
		collection: collection,
		notify:     notify,
		done:       ctx.Done(),
	}
	s.nextWatch++
	s.watchers = append(s.watchers, w)
	// Initial snapshot, delivered before any change.
	notify(s.snapshot(collection))
	s.dispatchMu.Unlock()

	<-ctx.Done()

	s.dispatchMu.Lock()
	for i, reg := range s.watchers {
		if reg.id == w.id {
			s.watchers = append(s.watchers[:i:i], s.watchers[i+1:]...)
			break
		}
	}
	s.dispatchMu.Unlock()
	return ctx.Err()
}

func (s *MemoryStore) broadcast(collection string) {
	docs := s.snapshot(collection)
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	for _, w := range s.watchers {
		if w.collection != collection {
			continue
		}
		select {
		case <-w.done:
		default:
			w.notify(docs)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*PostgresStore)(nil)

// Seed inserts a document with a fixed ID without notifying watchers, for
// test setup that wants a known starting state.
func (s *MemoryStore) Seed(collection, id string, fields map[string]any) {
	s.put(collection, id, fields)
}

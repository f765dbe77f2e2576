// pkg/docstore/postgres.go
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const notifyChannel = "docstore_changes"

// PostgresStore keeps documents in a single jsonb-backed table and pushes
// change notifications over LISTEN/NOTIFY. The NOTIFY payload is the
// collection name; watchers reload the full collection on every
// notification, which gives the full-snapshot semantics Store promises.
type PostgresStore struct {
	db       *sql.DB
	connInfo string
	tracer   trace.Tracer
}

// NewPostgres creates a store over an open connection pool. connInfo is the
// connection string used for the dedicated LISTEN connections.
func NewPostgres(db *sql.DB, connInfo string) *PostgresStore {
	return &PostgresStore{
		db:       db,
		connInfo: connInfo,
		tracer:   otel.Tracer("kpopgallery/docstore"),
	}
}

// EnsureSchema creates the documents table and the change-notification
// trigger if they do not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			collection  text        NOT NULL,
			id          text        NOT NULL,
			fields      jsonb       NOT NULL DEFAULT '{}'::jsonb,
			updated_at  timestamptz NOT NULL DEFAULT now(),
			PRIMARY KEY (collection, id)
		)`,
		`CREATE OR REPLACE FUNCTION documents_notify() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify('` + notifyChannel + `', COALESCE(NEW.collection, OLD.collection));
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS documents_changed ON documents`,
		`CREATE TRIGGER documents_changed
			AFTER INSERT OR UPDATE OR DELETE ON documents
			FOR EACH ROW EXECUTE FUNCTION documents_notify()`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Add inserts a new document with a generated ID.
func (s *PostgresStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ctx, span := s.tracer.Start(ctx, "docstore.add",
		trace.WithAttributes(attribute.String("collection", collection)),
	)
	defer span.End()

	id := uuid.NewString()
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshal fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, fields, updated_at)
		VALUES ($1, $2, $3, $4)
	`, collection, id, raw, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}

	span.SetAttributes(attribute.String("document.id", id))
	return id, nil
}

// Set merges fields into the document, creating it when absent.
func (s *PostgresStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	ctx, span := s.tracer.Start(ctx, "docstore.set",
		trace.WithAttributes(
			attribute.String("collection", collection),
			attribute.String("document.id", id),
		),
	)
	defer span.End()

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, fields, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (collection, id) DO UPDATE
		SET fields = documents.fields || EXCLUDED.fields,
		    updated_at = EXCLUDED.updated_at
	`, collection, id, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set document: %w", err)
	}
	return nil
}

// Delete removes a document.
func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	ctx, span := s.tracer.Start(ctx, "docstore.delete",
		trace.WithAttributes(
			attribute.String("collection", collection),
			attribute.String("document.id", id),
		),
	)
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM documents WHERE collection = $1 AND id = $2
	`, collection, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get loads a single document.
func (s *PostgresStore) Get(ctx context.Context, collection, id string) (Document, error) {
	ctx, span := s.tracer.Start(ctx, "docstore.get",
		trace.WithAttributes(
			attribute.String("collection", collection),
			attribute.String("document.id", id),
		),
	)
	defer span.End()

	var (
		doc Document
		raw []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, fields, updated_at FROM documents
		WHERE collection = $1 AND id = $2
	`, collection, id).Scan(&doc.ID, &raw, &doc.UpdatedAt)
	if err == sql.ErrNoRows {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("query document: %w", err)
	}
	if err := json.Unmarshal(raw, &doc.Fields); err != nil {
		return Document{}, fmt.Errorf("decode fields: %w", err)
	}
	return doc, nil
}

// List returns the full current state of a collection, ordered by insertion
// (older documents first).
func (s *PostgresStore) List(ctx context.Context, collection string) ([]Document, error) {
	ctx, span := s.tracer.Start(ctx, "docstore.list",
		trace.WithAttributes(attribute.String("collection", collection)),
	)
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fields, updated_at FROM documents
		WHERE collection = $1
		ORDER BY updated_at ASC, id ASC
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			doc Document
			raw []byte
		)
		if err := rows.Scan(&doc.ID, &raw, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if err := json.Unmarshal(raw, &doc.Fields); err != nil {
			return nil, fmt.Errorf("decode fields: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection: %w", err)
	}

	span.SetAttributes(attribute.Int("documents.loaded", len(docs)))
	return docs, nil
}

// WatchCollection delivers an initial snapshot and then the full collection
// state after every change, until ctx is cancelled.
func (s *PostgresStore) WatchCollection(ctx context.Context, collection string, fn CollectionFunc) error {
	return s.watch(ctx, collection, func(ctx context.Context) error {
		docs, err := s.List(ctx, collection)
		if err != nil {
			return err
		}
		fn(docs)
		return nil
	})
}

// WatchDocument delivers the state of one document on every change to its
// collection. Absence of the document is delivered as ok=false.
func (s *PostgresStore) WatchDocument(ctx context.Context, collection, id string, fn DocumentFunc) error {
	return s.watch(ctx, collection, func(ctx context.Context) error {
		doc, err := s.Get(ctx, collection, id)
		if err == ErrNotFound {
			fn(Document{}, false)
			return nil
		}
		if err != nil {
			return err
		}
		fn(doc, true)
		return nil
	})
}

func (s *PostgresStore) watch(ctx context.Context, collection string, reload func(context.Context) error) error {
	listener := pq.NewListener(s.connInfo, time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("docstore listener event %d: %v", ev, err)
		}
	})
	defer listener.Close()

	if err := listener.Listen(notifyChannel); err != nil {
		return fmt.Errorf("listen %s: %w", notifyChannel, err)
	}

	if err := reload(ctx); err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-listener.Notify:
			// A nil notification signals a re-established connection;
			// reload unconditionally since changes may have been missed.
			if n != nil && n.Extra != collection {
				continue
			}
			if err := reload(ctx); err != nil {
				log.Printf("docstore: reload %q after change: %v", collection, err)
			}
		case <-time.After(90 * time.Second):
			if err := listener.Ping(); err != nil {
				return fmt.Errorf("listener ping: %w", err)
			}
		}
	}
}

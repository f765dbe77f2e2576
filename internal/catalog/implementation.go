// internal/catalog/implementation.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BananaBox69/kpopgallery/internal/content"
	"github.com/BananaBox69/kpopgallery/pkg/docstore"
)

var (
	ErrUnknownGroup  = errors.New("group is not in the configured group list")
	ErrUnknownMember = errors.New("member does not belong to the group")
)

// service implements the Service interface over the document store.
type service struct {
	store docstore.Store
	meta  func() content.Metadata
}

// NewService creates a catalog service. meta supplies the current taxonomy
// metadata (group/member lists and display-ID prefixes).
func NewService(store docstore.Store, meta func() content.Metadata) Service {
	return &service{store: store, meta: meta}
}

// CreateCard assigns the next display ID for the card's (group, member) pair
// and stores the card. The sequence is computed from the store's current
// state at creation time and is never recomputed afterwards.
func (s *service) CreateCard(ctx context.Context, input CardInput) (*Card, error) {
	meta := s.meta()
	if err := validateTaxonomy(meta, input.Group, input.Member); err != nil {
		return nil, err
	}

	docs, err := s.store.List(ctx, Collection)
	if err != nil {
		return nil, fmt.Errorf("load card collection: %w", err)
	}

	now := time.Now().UTC()
	existing := FromDocuments(docs, now)
	displayID := NextDisplayID(existing, input.Group, input.Member, meta)

	fields := map[string]any{
		"displayId":   displayID,
		"group":       input.Group,
		"member":      input.Member,
		"album":       input.Album,
		"description": input.Description,
		"price":       input.Price.InexactFloat64(),
		"discount":    int(input.Discount),
		"status":      string(input.Status),
		"isRare":      input.IsRare,
		"imageUrl":    input.ImageURL,
		"backImage":   input.BackImageURL,
		"createdAt":   now.Format(time.RFC3339Nano),
	}

	docID, err := s.store.Add(ctx, Collection, fields)
	if err != nil {
		return nil, fmt.Errorf("store card: %w", err)
	}

	card := FromDocument(docstore.Document{ID: docID, Fields: fields}, now)
	return &card, nil
}

func validateTaxonomy(meta content.Metadata, group, member string) error {
	if len(meta.GroupOrder) == 0 {
		// No taxonomy configured yet; nothing to validate against.
		return nil
	}
	if meta.GroupIndex(group) < 0 {
		return ErrUnknownGroup
	}
	if meta.MemberIndex(group, member) < 0 {
		return ErrUnknownMember
	}
	return nil
}

// UpdateCard merges a field patch into an existing card. The display ID is
// immutable after assignment and silently dropped from patches.
func (s *service) UpdateCard(ctx context.Context, docID string, patch map[string]any) error {
	delete(patch, "displayId")
	if len(patch) == 0 {
		return nil
	}
	if err := s.store.Set(ctx, Collection, docID, patch); err != nil {
		return fmt.Errorf("update card %s: %w", docID, err)
	}
	return nil
}

func (s *service) DeleteCard(ctx context.Context, docID string) error {
	if err := s.store.Delete(ctx, Collection, docID); err != nil {
		return fmt.Errorf("delete card %s: %w", docID, err)
	}
	return nil
}

func (s *service) BulkUpdate(ctx context.Context, docIDs []string, field string, value any) error {
	failed := 0
	for _, id := range docIDs {
		if err := s.store.Set(ctx, Collection, id, map[string]any{field: value}); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("bulk update %q: %d of %d cards failed", field, failed, len(docIDs))
	}
	return nil
}

func (s *service) BulkDelete(ctx context.Context, docIDs []string) error {
	failed := 0
	for _, id := range docIDs {
		if err := s.store.Delete(ctx, Collection, id); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("bulk delete: %d of %d cards failed", failed, len(docIDs))
	}
	return nil
}

// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BananaBox69/kpopgallery/internal/pricing"
)

// Collection is the card collection name in the document store.
const Collection = "cards"

// CardInput is the payload for creating or editing a card through the admin
// form.
type CardInput struct {
	Group        string          `json:"group"`
	Member       string          `json:"member"`
	Album        string          `json:"album"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Discount     pricing.Tier    `json:"discount"`
	Status       Status          `json:"status"`
	IsRare       bool            `json:"isRare"`
	ImageURL     string          `json:"imageUrl"`
	BackImageURL string          `json:"backImage"`
}

// Service mutates the remote card collection. Reads happen through the
// storefront engine's synced snapshot, not here.
type Service interface {
	// CreateCard stores a new card, assigning its display ID and creation
	// timestamp.
	CreateCard(ctx context.Context, input CardInput) (*Card, error)
	// UpdateCard applies an arbitrary field patch to an existing card.
	UpdateCard(ctx context.Context, docID string, patch map[string]any) error
	DeleteCard(ctx context.Context, docID string) error
	// BulkUpdate applies one field/value pair across an id set. A partial
	// failure leaves some ids updated and others not; it surfaces as a
	// single aggregate error without identifying which ids succeeded.
	BulkUpdate(ctx context.Context, docIDs []string, field string, value any) error
	// BulkDelete removes every card in the id set, with the same aggregate
	// failure semantics as BulkUpdate.
	BulkDelete(ctx context.Context, docIDs []string) error
}

// internal/catalog/normalize.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BananaBox69/kpopgallery/internal/pricing"
	"github.com/BananaBox69/kpopgallery/pkg/docstore"
)

// Placeholder image references substituted when a card has no uploaded
// images.
const (
	PlaceholderFront = "https://placehold.co/220x341/121212/ff4757?text=Image+Missing&font=playfair+display"
	PlaceholderBack  = "https://placehold.co/220x341/1e1e1e/ffffff?text=Card+Back&font=playfair+display"
)

// FromDocument normalizes one raw store document into a Card. Missing
// optional fields are defaulted, never treated as errors: images fall back
// to placeholders, the display ID falls back to the document ID, and the
// added date falls back to now.
func FromDocument(doc docstore.Document, now time.Time) Card {
	card := Card{
		DocID:        doc.ID,
		DisplayID:    doc.String("displayId", doc.ID),
		Group:        doc.String("group", ""),
		Member:       doc.String("member", ""),
		Album:        doc.String("album", ""),
		Version:      doc.String("description", ""),
		Status:       Status(doc.String("status", string(StatusAvailable))),
		ImageURL:     doc.String("imageUrl", PlaceholderFront),
		BackImageURL: doc.String("backImage", PlaceholderBack),
		DateAdded:    timeField(doc, "createdAt", now),
	}

	switch v := doc.Fields["price"].(type) {
	case float64:
		card.Price = decimal.NewFromFloat(v)
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			card.Price = d
		}
	case int:
		card.Price = decimal.NewFromInt(int64(v))
	}

	switch v := doc.Fields["discount"].(type) {
	case float64:
		card.Discount = pricing.Tier(int(v))
	case int:
		card.Discount = pricing.Tier(v)
	}

	if rare, ok := doc.Fields["isRare"].(bool); ok {
		card.IsRare = rare
	}

	return card
}

// FromDocuments normalizes a full collection snapshot, preserving order.
func FromDocuments(docs []docstore.Document, now time.Time) []Card {
	cards := make([]Card, 0, len(docs))
	for _, doc := range docs {
		cards = append(cards, FromDocument(doc, now))
	}
	return cards
}

func timeField(doc docstore.Document, name string, fallback time.Time) time.Time {
	switch v := doc.Fields[name].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return fallback
}

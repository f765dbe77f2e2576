// internal/basket/basket.go
package basket

import (
	"github.com/shopspring/decimal"

	"github.com/BananaBox69/kpopgallery/internal/catalog"
)

// Basket is a session-local selection of available cards pending checkout.
// It holds at most one entry per document ID, in insertion order, and is
// never persisted remotely. Not safe for concurrent use; the owning engine
// serializes access.
type Basket struct {
	entries []catalog.Card
}

// New creates an empty basket.
func New() *Basket {
	return &Basket{}
}

// Toggle removes the entry for docID if present; otherwise it looks the
// card up in the current catalog and adds it only when its status is
// available. Toggling a missing or non-available card is a silent no-op,
// not an error: the UI is expected to prevent the action. The return value
// reports whether the card is in the basket afterwards.
func (b *Basket) Toggle(docID string, cards []catalog.Card) bool {
	for i, entry := range b.entries {
		if entry.DocID == docID {
			b.entries = append(b.entries[:i:i], b.entries[i+1:]...)
			return false
		}
	}
	for _, c := range cards {
		if c.DocID == docID && c.Status == catalog.StatusAvailable {
			b.entries = append(b.entries, c)
			return true
		}
	}
	return false
}

// Reconcile drops every entry whose document ID no longer resolves to an
// available card in the latest catalog snapshot. It runs after every sync,
// unconditionally; it is the basket's sole consistency mechanism. A card
// claimed by another client simply disappears from this basket once the
// admin marks it reserved or sold.
func (b *Basket) Reconcile(cards []catalog.Card) {
	kept := b.entries[:0]
	for _, entry := range b.entries {
		for _, c := range cards {
			if c.DocID == entry.DocID && c.Status == catalog.StatusAvailable {
				// Carry the refreshed record so price or discount edits
				// show up in the basket.
				kept = append(kept, c)
				break
			}
		}
	}
	b.entries = kept
}

// Total sums the displayed (post-discount) price of every entry.
func (b *Basket) Total() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range b.entries {
		total = total.Add(entry.FinalPrice())
	}
	return total
}

// Items returns the entries in insertion order.
func (b *Basket) Items() []catalog.Card {
	out := make([]catalog.Card, len(b.entries))
	copy(out, b.entries)
	return out
}

// Contains reports whether docID is in the basket.
func (b *Basket) Contains(docID string) bool {
	for _, entry := range b.entries {
		if entry.DocID == docID {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (b *Basket) Len() int {
	return len(b.entries)
}

// Clear empties the basket.
func (b *Basket) Clear() {
	b.entries = nil
}

// internal/catalog/domain.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BananaBox69/kpopgallery/internal/pricing"
)

// Status is a card's lifecycle flag.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusSold      Status = "sold"
	StatusArchived  Status = "archived"
)

// NewWindow is how long after creation a card counts as "new".
const NewWindow = 7 * 24 * time.Hour

// Card represents one physical photocard in the collection.
type Card struct {
	DocID        string          `json:"docId"`
	DisplayID    string          `json:"id"`
	Group        string          `json:"group"`
	Member       string          `json:"member"`
	Album        string          `json:"album"`
	Version      string          `json:"version"`
	Price        decimal.Decimal `json:"price"`
	Discount     pricing.Tier    `json:"discount"`
	Status       Status          `json:"status"`
	IsRare       bool            `json:"isRare"`
	DateAdded    time.Time       `json:"dateAdded"`
	ImageURL     string          `json:"image"`
	BackImageURL string          `json:"backImage"`
}

// FinalPrice is the price shown to buyers after the discount rule.
func (c Card) FinalPrice() decimal.Decimal {
	return pricing.Discounted(c.Price, c.Discount)
}

// IsNew reports whether the card was added within NewWindow of now.
func (c Card) IsNew(now time.Time) bool {
	return now.Sub(c.DateAdded) < NewWindow
}

// Browsable reports whether the card appears in public browsing sections.
func (c Card) Browsable() bool {
	return c.Status != StatusSold && c.Status != StatusArchived
}

// FieldStrings returns the string form of every field on the card, in
// declaration order. The admin free-text search matches against all of
// them, image URLs and timestamps included.
func (c Card) FieldStrings() []string {
	return []string{
		c.DocID,
		c.DisplayID,
		c.Group,
		c.Member,
		c.Album,
		c.Version,
		c.Price.String(),
		decimal.NewFromInt(int64(c.Discount)).String(),
		string(c.Status),
		boolString(c.IsRare),
		c.DateAdded.String(),
		c.ImageURL,
		c.BackImageURL,
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

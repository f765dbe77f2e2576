// internal/admin/admin_test.go
package admin

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BananaBox69/kpopgallery/internal/catalog"
	"github.com/BananaBox69/kpopgallery/internal/content"
	"github.com/BananaBox69/kpopgallery/internal/pricing"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func testMetadata() content.Metadata {
	meta := content.DefaultMetadata()
	meta.GroupOrder = []string{"Red Velvet", "IU", "aespa"}
	meta.MemberOrder = map[string][]string{
		"Red Velvet": {"Irene", "Wendy"},
		"IU":         {"IU"},
		"aespa":      {"Karina", "Winter"},
	}
	return meta
}

func testCards() []catalog.Card {
	return []catalog.Card{
		{DocID: "w1", DisplayID: "RV-W-001", Group: "Red Velvet", Member: "Wendy", Album: "Perfect Velvet",
			Price: decimal.NewFromInt(8), Status: catalog.StatusAvailable, DateAdded: testNow.Add(-20 * 24 * time.Hour)},
		{DocID: "k1", DisplayID: "ae-K-001", Group: "aespa", Member: "Karina", Album: "Armageddon",
			Price: decimal.NewFromInt(12), Discount: pricing.TierSale, Status: catalog.StatusReserved, DateAdded: testNow.Add(-2 * 24 * time.Hour)},
		{DocID: "i1", DisplayID: "I-U-001", Group: "IU", Member: "IU", Album: "Lilac",
			Price: decimal.NewFromInt(5), Status: catalog.StatusSold, DateAdded: testNow.Add(-60 * 24 * time.Hour)},
		{DocID: "r1", DisplayID: "RV-I-001", Group: "Red Velvet", Member: "Irene", Album: "Chill Kill",
			Price: decimal.NewFromInt(3), Status: catalog.StatusArchived, DateAdded: testNow.Add(-3 * 24 * time.Hour)},
	}
}

func docIDs(cards []catalog.Card) []string {
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.DocID)
	}
	return ids
}

func TestApplyDefaultStateHidesArchived(t *testing.T) {
	out := Apply(testCards(), DefaultFilters(), DefaultSort(), testMetadata(), testNow)
	assert.Equal(t, []string{"w1", "i1", "k1"}, docIDs(out),
		"default order follows configured group then member order; archived stays hidden")
}

func TestApplyIsIdempotent(t *testing.T) {
	first := Apply(testCards(), DefaultFilters(), DefaultSort(), testMetadata(), testNow)
	second := Apply(first, DefaultFilters(), DefaultSort(), testMetadata(), testNow)
	assert.Equal(t, docIDs(first), docIDs(second))
}

func TestStatusFilters(t *testing.T) {
	meta := testMetadata()

	t.Run("archived only by explicit selection", func(t *testing.T) {
		f := DefaultFilters()
		f.Status = "archived"
		out := Apply(testCards(), f, DefaultSort(), meta, testNow)
		assert.Equal(t, []string{"r1"}, docIDs(out))
	})

	t.Run("sale matches any discount tier", func(t *testing.T) {
		f := DefaultFilters()
		f.Status = "Sale"
		out := Apply(testCards(), f, DefaultSort(), meta, testNow)
		assert.Equal(t, []string{"k1"}, docIDs(out))
	})

	t.Run("new matches the seven day window", func(t *testing.T) {
		f := DefaultFilters()
		f.Status = "New"
		out := Apply(testCards(), f, DefaultSort(), meta, testNow)
		assert.Equal(t, []string{"r1", "k1"}, docIDs(out),
			"New filters on dateAdded only; archived cards are not excluded")
	})

	t.Run("literal status", func(t *testing.T) {
		f := DefaultFilters()
		f.Status = "sold"
		out := Apply(testCards(), f, DefaultSort(), meta, testNow)
		assert.Equal(t, []string{"i1"}, docIDs(out))
	})
}

func TestGroupAndMemberFilters(t *testing.T) {
	f := DefaultFilters()
	f.Group = "Red Velvet"
	out := Apply(testCards(), f, DefaultSort(), testMetadata(), testNow)
	assert.Equal(t, []string{"w1"}, docIDs(out))

	f.Member = "Irene"
	f.Status = "archived"
	out = Apply(testCards(), f, DefaultSort(), testMetadata(), testNow)
	assert.Equal(t, []string{"r1"}, docIDs(out))
}

func TestSearchCoversEveryField(t *testing.T) {
	cards := testCards()
	cards[0].ImageURL = "https://cdn.example.com/wendy-front.jpg"

	f := DefaultFilters()
	f.SearchTerm = "wendy-front"
	out := Apply(cards, f, DefaultSort(), testMetadata(), testNow)
	assert.Equal(t, []string{"w1"}, docIDs(out), "image URLs are searchable")

	f.SearchTerm = "ae-k"
	out = Apply(cards, f, DefaultSort(), testMetadata(), testNow)
	assert.Equal(t, []string{"k1"}, docIDs(out), "display IDs match case-insensitively")

	f.SearchTerm = "12"
	out = Apply(cards, f, DefaultSort(), testMetadata(), testNow)
	assert.Contains(t, docIDs(out), "k1", "prices are searchable as strings")
}

func TestSortByPrice(t *testing.T) {
	f := DefaultFilters()
	f.Status = "All"

	out := Apply(testCards(), f, Sort{By: SortPrice, Order: Asc}, testMetadata(), testNow)
	assert.Equal(t, []string{"i1", "w1", "k1"}, docIDs(out))

	out = Apply(testCards(), f, Sort{By: SortPrice, Order: Desc}, testMetadata(), testNow)
	assert.Equal(t, []string{"k1", "w1", "i1"}, docIDs(out))
}

func TestSortByDateAdded(t *testing.T) {
	out := Apply(testCards(), DefaultFilters(), Sort{By: SortDateAdded, Order: Desc}, testMetadata(), testNow)
	assert.Equal(t, []string{"k1", "w1", "i1"}, docIDs(out))
}

func TestDescReversesDefaultOrder(t *testing.T) {
	asc := Apply(testCards(), DefaultFilters(), DefaultSort(), testMetadata(), testNow)
	desc := Apply(testCards(), DefaultFilters(), Sort{By: SortDefault, Order: Desc}, testMetadata(), testNow)

	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i].DocID, desc[len(desc)-1-i].DocID)
	}
}

func TestMemberOptions(t *testing.T) {
	meta := testMetadata()

	assert.Equal(t, []string{"Karina", "Winter"}, MemberOptions(meta, "aespa"))
	assert.Equal(t, []string{"Irene", "Wendy", "IU", "Karina", "Winter"}, MemberOptions(meta, "All"),
		"the union keeps configured group order")
	assert.Empty(t, MemberOptions(meta, "NewJeans"))
}

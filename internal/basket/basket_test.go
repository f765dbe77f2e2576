// internal/basket/basket_test.go
package basket

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BananaBox69/kpopgallery/internal/catalog"
	"github.com/BananaBox69/kpopgallery/internal/pricing"
)

func availableCard(docID string, price int64) catalog.Card {
	return catalog.Card{
		DocID:     docID,
		DisplayID: "RV-W-" + docID,
		Group:     "Red Velvet",
		Member:    "Wendy",
		Price:     decimal.NewFromInt(price),
		Status:    catalog.StatusAvailable,
	}
}

func TestToggleAddsOnlyAvailableCards(t *testing.T) {
	cards := []catalog.Card{
		availableCard("a", 5),
		{DocID: "b", Status: catalog.StatusReserved},
		{DocID: "c", Status: catalog.StatusSold},
	}

	b := New()
	assert.True(t, b.Toggle("a", cards))
	assert.False(t, b.Toggle("b", cards), "reserved cards are not addable")
	assert.False(t, b.Toggle("c", cards), "sold cards are not addable")
	assert.False(t, b.Toggle("missing", cards), "unknown IDs are a silent no-op")
	assert.Equal(t, 1, b.Len())
}

func TestToggleRemoves(t *testing.T) {
	cards := []catalog.Card{availableCard("a", 5)}
	b := New()

	require.True(t, b.Toggle("a", cards))
	assert.False(t, b.Toggle("a", cards))
	assert.Zero(t, b.Len())
}

func TestReconcileDropsRetiredCards(t *testing.T) {
	snapshot := []catalog.Card{availableCard("a", 5), availableCard("b", 7)}
	b := New()
	b.Toggle("a", snapshot)
	b.Toggle("b", snapshot)

	// An admin reserves card a; its basket entry disappears on the next
	// sync. Buying from a basket is first come, first served.
	snapshot[0].Status = catalog.StatusReserved
	b.Reconcile(snapshot)

	assert.False(t, b.Contains("a"))
	assert.True(t, b.Contains("b"))
}

func TestReconcileRefreshesPrices(t *testing.T) {
	snapshot := []catalog.Card{availableCard("a", 10)}
	b := New()
	b.Toggle("a", snapshot)

	snapshot[0].Discount = pricing.TierSale
	b.Reconcile(snapshot)

	assert.True(t, b.Total().Equal(decimal.NewFromInt(9)), "discount edits show up in the basket total")
}

func TestReconcileDropsDeletedCards(t *testing.T) {
	snapshot := []catalog.Card{availableCard("a", 5)}
	b := New()
	b.Toggle("a", snapshot)

	b.Reconcile(nil)
	assert.Zero(t, b.Len())
}

func TestTotalSumsFinalPrices(t *testing.T) {
	a := availableCard("a", 10)
	a.Discount = pricing.TierSale
	snapshot := []catalog.Card{a, availableCard("b", 4)}

	b := New()
	b.Toggle("a", snapshot)
	b.Toggle("b", snapshot)

	assert.True(t, b.Total().Equal(decimal.NewFromInt(13)))
}

func TestCheckoutMessage(t *testing.T) {
	a := availableCard("a", 10)
	a.DisplayID = "RV-W-001"
	a.Album = "Perfect Velvet"
	a.Version = "Peek-A-Boo Ver."
	a.Discount = pricing.TierSale

	c := availableCard("b", 4)
	c.DisplayID = "RV-W-002"
	c.Album = "Chill Kill"
	c.Version = "Photobook Ver."

	snapshot := []catalog.Card{a, c}
	b := New()
	b.Toggle("a", snapshot)
	b.Toggle("b", snapshot)

	got := CheckoutMessage(b, CheckoutOptions{
		Country:        "Germany",
		ShippingMethod: "Tracked",
		PaymentMethod:  "PayPal",
	})

	want := "Hello! I would like to buy the following card(s):\n\n" +
		"RV-W-001\nWendy - Perfect Velvet\nPeek-A-Boo Ver.\n€9.00\n\n" +
		"RV-W-002\nWendy - Chill Kill\nPhotobook Ver.\n€4.00" +
		"\n\n------------------------------\n" +
		"TOTAL (2 cards): €13.00 (excl. shipping)\n\n" +
		"--- Shipping & Payment ---\n" +
		"Ship to: Germany\n" +
		"Shipping Method: Tracked\n" +
		"Payment Method: PayPal\n"
	assert.Equal(t, want, got)
}

func TestCheckoutMessageWithoutCountry(t *testing.T) {
	b := New()
	got := CheckoutMessage(b, CheckoutOptions{})
	assert.Contains(t, got, "Ship to: Please specify\n")
	assert.Contains(t, got, "TOTAL (0 cards): €0.00 (excl. shipping)")
}

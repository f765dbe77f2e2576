// internal/basket/checkout.go
package basket

import (
	"fmt"
	"strings"
)

// CheckoutOptions are the buyer's shipping and payment selections.
type CheckoutOptions struct {
	Country        string `json:"country"`
	ShippingMethod string `json:"shippingMethod"`
	PaymentMethod  string `json:"paymentMethod"`
}

// CheckoutMessage renders the plain-text order message the buyer sends to
// the seller: one block per card (id, member, album, version, price), the
// basket total, and the shipping/payment selections.
func CheckoutMessage(b *Basket, opts CheckoutOptions) string {
	var sb strings.Builder
	sb.WriteString("Hello! I would like to buy the following card(s):\n\n")

	blocks := make([]string, 0, b.Len())
	for _, item := range b.Items() {
		blocks = append(blocks, fmt.Sprintf("%s\n%s - %s\n%s\n€%s",
			item.DisplayID, item.Member, item.Album, item.Version,
			item.FinalPrice().StringFixed(2)))
	}
	sb.WriteString(strings.Join(blocks, "\n\n"))

	country := opts.Country
	if country == "" {
		country = "Please specify"
	}

	sb.WriteString("\n\n------------------------------\n")
	fmt.Fprintf(&sb, "TOTAL (%d cards): €%s (excl. shipping)\n\n", b.Len(), b.Total().StringFixed(2))
	sb.WriteString("--- Shipping & Payment ---\n")
	fmt.Fprintf(&sb, "Ship to: %s\n", country)
	fmt.Fprintf(&sb, "Shipping Method: %s\n", opts.ShippingMethod)
	fmt.Fprintf(&sb, "Payment Method: %s\n", opts.PaymentMethod)
	return sb.String()
}

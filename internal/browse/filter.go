// internal/browse/filter.go
package browse

import (
	"sort"
	"strings"
	"time"

	"github.com/BananaBox69/kpopgallery/internal/catalog"
	"github.com/BananaBox69/kpopgallery/internal/pricing"
)

// Apply filters a section's cards against the filter state. Every active
// condition must hold: search matches the concatenation of album, version
// and display ID (case-insensitive substring); album and version match
// exactly unless "All"; every active tag must hold on its own. An empty
// result is valid.
func Apply(cards []catalog.Card, state FilterState, now time.Time) []catalog.Card {
	out := make([]catalog.Card, 0, len(cards))
	for _, c := range cards {
		if matches(c, state, now) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c catalog.Card, state FilterState, now time.Time) bool {
	if state.SearchTerm != "" {
		term := strings.ToLower(state.SearchTerm)
		searchable := strings.ToLower(c.Album + " " + c.Version + " " + c.DisplayID)
		if !strings.Contains(searchable, term) {
			return false
		}
	}
	if state.Album != "All" && c.Album != state.Album {
		return false
	}
	if state.Version != "All" && c.Version != state.Version {
		return false
	}
	for tag, active := range state.Tags {
		if !active {
			continue
		}
		switch tag {
		case TagNew:
			if !c.IsNew(now) {
				return false
			}
		case TagRare:
			if !c.IsRare {
				return false
			}
		case TagSale:
			if c.Discount != pricing.TierSale {
				return false
			}
		case TagSuperSale:
			if c.Discount != pricing.TierSuperSale {
				return false
			}
		}
	}
	return true
}

// SortForCarousel orders cards the way the carousel displays them: album,
// then version, then display ID, locale ascending. The public view has no
// direction control; this sort always applies after filtering.
func SortForCarousel(cards []catalog.Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cmp := catalog.Compare(cards[i].Album, cards[j].Album); cmp != 0 {
			return cmp < 0
		}
		if cmp := catalog.Compare(cards[i].Version, cards[j].Version); cmp != 0 {
			return cmp < 0
		}
		return catalog.Compare(cards[i].DisplayID, cards[j].DisplayID) < 0
	})
}

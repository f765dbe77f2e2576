// internal/admin/engine.go
package admin

import (
	"sort"
	"strings"
	"time"

	"github.com/BananaBox69/kpopgallery/internal/catalog"
	"github.com/BananaBox69/kpopgallery/internal/content"
	"github.com/BananaBox69/kpopgallery/internal/pricing"
)

// Apply computes the back-office view: the card list filtered and sorted
// according to the admin state. It is pure over its inputs; applying it
// twice with identical state yields the same ordered list.
func Apply(cards []catalog.Card, f Filters, s Sort, meta content.Metadata, now time.Time) []catalog.Card {
	out := make([]catalog.Card, 0, len(cards))
	for _, c := range cards {
		if matchesFilters(c, f, now) {
			out = append(out, c)
		}
	}
	sortCards(out, s, meta)
	return out
}

func matchesFilters(c catalog.Card, f Filters, now time.Time) bool {
	if f.Group != "All" && c.Group != f.Group {
		return false
	}
	if f.Member != "All" && c.Member != f.Member {
		return false
	}

	switch f.Status {
	case "All":
		// "All" still hides archived cards; archived is reachable only by
		// selecting it explicitly.
		if c.Status == catalog.StatusArchived {
			return false
		}
	case "Sale":
		if c.Discount == pricing.TierNone {
			return false
		}
	case "New":
		if !c.IsNew(now) {
			return false
		}
	default:
		if c.Status != catalog.Status(f.Status) {
			return false
		}
	}

	if f.SearchTerm != "" {
		// Matches the string form of every field, image URLs and
		// timestamps included.
		// TODO: restrict to the visible columns once the admin UI
		// exposes per-column search.
		term := strings.ToLower(f.SearchTerm)
		matched := false
		for _, field := range c.FieldStrings() {
			if strings.Contains(strings.ToLower(field), term) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func sortCards(cards []catalog.Card, s Sort, meta content.Metadata) {
	compare := func(a, b catalog.Card) int {
		if s.By == SortDefault {
			if cmp := meta.GroupIndex(a.Group) - meta.GroupIndex(b.Group); cmp != 0 {
				return cmp
			}
			if cmp := meta.MemberIndex(a.Group, a.Member) - meta.MemberIndex(b.Group, b.Member); cmp != 0 {
				return cmp
			}
			return catalog.Compare(a.DisplayID, b.DisplayID)
		}
		switch s.By {
		case SortID:
			return catalog.Compare(a.DisplayID, b.DisplayID)
		case SortGroup:
			return catalog.Compare(a.Group, b.Group)
		case SortMember:
			return catalog.Compare(a.Member, b.Member)
		case SortAlbum:
			return catalog.Compare(a.Album, b.Album)
		case SortVersion:
			return catalog.Compare(a.Version, b.Version)
		case SortPrice:
			return a.Price.Cmp(b.Price)
		case SortDateAdded:
			return a.DateAdded.Compare(b.DateAdded)
		}
		return 0
	}

	sort.SliceStable(cards, func(i, j int) bool {
		cmp := compare(cards[i], cards[j])
		if s.Order == Desc {
			// Direction reverses the overall comparator result, default
			// sort segments included.
			cmp = -cmp
		}
		return cmp < 0
	})
}

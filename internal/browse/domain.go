// internal/browse/domain.go
package browse

import (
	"sort"

	"github.com/BananaBox69/kpopgallery/internal/catalog"
	"github.com/BananaBox69/kpopgallery/internal/content"
)

// Tag is one of the quick filters in the public filter sidebar.
type Tag string

const (
	TagNew       Tag = "new"
	TagRare      Tag = "rare"
	TagSale      Tag = "sale"
	TagSuperSale Tag = "super-sale"
)

// FilterState is the per-section filter selection for public browsing.
type FilterState struct {
	SearchTerm string       `json:"searchTerm"`
	Album      string       `json:"album"`
	Version    string       `json:"version"`
	Tags       map[Tag]bool `json:"tags"`
}

// DefaultFilterState is the state a section starts with and returns to on
// reset.
func DefaultFilterState() FilterState {
	return FilterState{Album: "All", Version: "All", Tags: map[Tag]bool{}}
}

// IsDefault reports whether the state matches the defaults (empty search,
// "All" selectors, no tags).
func (f FilterState) IsDefault() bool {
	return f.SearchTerm == "" && f.Album == "All" && f.Version == "All" && len(f.Tags) == 0
}

// Section is one browsable (group, member) slice of the collection.
type Section struct {
	Group  string         `json:"group"`
	Member string         `json:"member"`
	Cards  []catalog.Card `json:"cards"`
}

// Key identifies the section's filter state.
func (s Section) Key() string {
	return SectionKey(s.Group, s.Member)
}

// SectionKey builds the identifier used to key per-section filter state.
func SectionKey(group, member string) string {
	return group + "|" + member
}

// Sections builds the public browsing sections: cards that are neither sold
// nor archived, grouped by (group, member), ordered by the configured group
// and member order. Only members with at least one such card appear.
func Sections(cards []catalog.Card, meta content.Metadata) []Section {
	browsable := make([]catalog.Card, 0, len(cards))
	for _, c := range cards {
		if c.Browsable() {
			browsable = append(browsable, c)
		}
	}
	idx := catalog.GroupByMember(browsable)

	var sections []Section
	for _, group := range meta.GroupOrder {
		for _, member := range meta.MembersOf(group) {
			if memberCards := idx.Cards(group, member); len(memberCards) > 0 {
				sections = append(sections, Section{Group: group, Member: member, Cards: memberCards})
			}
		}
	}
	return sections
}

// AlbumOptions lists the distinct albums among a member's browsable cards,
// sorted, for the filter sidebar.
func AlbumOptions(cards []catalog.Card) []string {
	return distinct(cards, func(c catalog.Card) string { return c.Album })
}

// VersionOptions lists the distinct versions among a member's browsable
// cards, sorted.
func VersionOptions(cards []catalog.Card) []string {
	return distinct(cards, func(c catalog.Card) string { return c.Version })
}

func distinct(cards []catalog.Card, field func(catalog.Card) string) []string {
	seen := map[string]bool{}
	var values []string
	for _, c := range cards {
		if v := field(c); v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

// CardsPerPage is the carousel page size.
const CardsPerPage = 10

// PageCount returns the number of carousel pages for n cards.
func PageCount(n int) int {
	return (n + CardsPerPage - 1) / CardsPerPage
}

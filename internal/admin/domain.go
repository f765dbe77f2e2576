// internal/admin/domain.go
package admin

import (
	"github.com/BananaBox69/kpopgallery/internal/catalog"
	"github.com/BananaBox69/kpopgallery/internal/content"
)

// Filters is the back-office filter state. "All" disables a selector; the
// Status selector additionally understands the pseudo-values "Sale"
// (any discount) and "New" (added in the last week).
type Filters struct {
	Group      string `json:"group"`
	Member     string `json:"member"`
	Status     string `json:"status"`
	SearchTerm string `json:"searchTerm"`
}

// DefaultFilters is the state the admin list opens with.
func DefaultFilters() Filters {
	return Filters{Group: "All", Member: "All", Status: "All"}
}

// SortKey selects the field the admin list is ordered by.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortID        SortKey = "id"
	SortPrice     SortKey = "price"
	SortGroup     SortKey = "group"
	SortMember    SortKey = "member"
	SortAlbum     SortKey = "album"
	SortVersion   SortKey = "version"
	SortDateAdded SortKey = "dateAdded"
)

// Order is the sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort is the back-office sort state.
type Sort struct {
	By    SortKey `json:"by"`
	Order Order   `json:"order"`
}

// DefaultSort orders by the configured group/member order, ascending.
func DefaultSort() Sort {
	return Sort{By: SortDefault, Order: Asc}
}

// View is the back-office listing: the filtered and sorted card list plus
// the selection, filter and sort state it was rendered under.
type View struct {
	Cards    []catalog.Card
	Selected map[string]bool
	Filters  Filters
	Sort     Sort
	Members  []string
}

// MemberOptions lists the member choices for the member filter given the
// current group selection: the group's configured members, or the
// deduplicated union of every group's members when "All" is selected.
func MemberOptions(meta content.Metadata, group string) []string {
	if group != "All" {
		return meta.MembersOf(group)
	}
	seen := map[string]bool{}
	var members []string
	for _, g := range meta.GroupOrder {
		for _, m := range meta.MembersOf(g) {
			if !seen[m] {
				seen[m] = true
				members = append(members, m)
			}
		}
	}
	return members
}

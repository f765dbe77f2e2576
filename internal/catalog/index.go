// internal/catalog/index.go
package catalog

// Index groups a flat card list by group, then member. Per-(group, member)
// insertion order of the input is preserved. No status filtering happens
// here; callers filter before indexing.
type Index map[string]map[string][]Card

// GroupByMember builds an Index from a card list.
func GroupByMember(cards []Card) Index {
	idx := Index{}
	for _, card := range cards {
		members := idx[card.Group]
		if members == nil {
			members = map[string][]Card{}
			idx[card.Group] = members
		}
		members[card.Member] = append(members[card.Member], card)
	}
	return idx
}

// Cards returns the card list for a (group, member) pair, or nil.
func (idx Index) Cards(group, member string) []Card {
	return idx[group][member]
}

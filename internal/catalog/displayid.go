// internal/catalog/displayid.go
package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/BananaBox69/kpopgallery/internal/content"
)

// NextDisplayID generates the human-readable ID for a card being created:
// {groupPrefix}-{memberPrefix}-{NNN}, where NNN is one greater than the
// highest existing sequence for that exact (group, member) pair. Sequences
// are never reused and never recomputed after assignment.
func NextDisplayID(existing []Card, group, member string, meta content.Metadata) string {
	groupPrefix := meta.GroupPrefixes[group]
	if groupPrefix == "" {
		groupPrefix = "XX"
	}

	memberPrefix := meta.MemberPrefixes[member]
	if memberPrefix == "" {
		memberPrefix = upperFirst(member)
	}

	maxSeq := 0
	for _, card := range existing {
		if card.Group != group || card.Member != member {
			continue
		}
		if seq := sequenceOf(card.DisplayID); seq > maxSeq {
			maxSeq = seq
		}
	}

	return fmt.Sprintf("%s-%s-%03d", groupPrefix, memberPrefix, maxSeq+1)
}

func sequenceOf(displayID string) int {
	parts := strings.Split(displayID, "-")
	if len(parts) < 3 {
		return 0
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0
	}
	return n
}

func upperFirst(s string) string {
	for _, r := range s {
		return string(unicode.ToUpper(r))
	}
	return "X"
}

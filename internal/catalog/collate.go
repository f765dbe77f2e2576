// internal/catalog/collate.go
package catalog

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English)
)

// Compare is a locale-aware string comparison used by every user-facing
// sort. Collators are not safe for concurrent use, so calls serialize.
func Compare(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

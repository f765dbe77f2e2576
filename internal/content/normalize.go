// internal/content/normalize.go
package content

import (
	"encoding/json"
	"sort"
)

// SiteContentFromFields decodes a settings document into SiteContent,
// layering the stored fields over the defaults so partial documents are
// valid.
func SiteContentFromFields(fields map[string]any) SiteContent {
	sc := DefaultSiteContent()
	decodeInto(fields, &sc)
	return sc
}

// MetadataFromFields decodes the metadata document, layering over defaults.
func MetadataFromFields(fields map[string]any) Metadata {
	m := DefaultMetadata()
	decodeInto(fields, &m)
	return m
}

func decodeInto(fields map[string]any, dst any) {
	if len(fields) == 0 {
		return
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return
	}
	// Decode errors leave the defaults in place; data-shape anomalies are
	// resolved by defaulting, never raised.
	_ = json.Unmarshal(raw, dst)
}

// AlbumSuggestions returns the known album names for a (group, member) pair:
// the group's own releases plus the member's, deduplicated and sorted.
func (m Metadata) AlbumSuggestions(group, member string) []string {
	owners := m.Albums[group]
	if owners == nil {
		return nil
	}
	seen := map[string]bool{}
	var names []string
	for _, owner := range []string{GroupAlbumsOwner, member} {
		for name := range owners[owner] {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// VersionSuggestions returns the known versions for an album, preferring the
// group release entry over the member's.
func (m Metadata) VersionSuggestions(group, member, album string) []string {
	owners := m.Albums[group]
	if owners == nil {
		return nil
	}
	if info, ok := owners[GroupAlbumsOwner][album]; ok && len(info.Versions) > 0 {
		return info.Versions
	}
	if info, ok := owners[member][album]; ok {
		return info.Versions
	}
	return nil
}

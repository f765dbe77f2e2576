// internal/content/domain.go
package content

// SiteContent holds the editable display text shown on the public storefront.
// Every field defaults to empty; the document may be absent entirely.
type SiteContent struct {
	Title          string                       `json:"title"`
	Subtitle       string                       `json:"subtitle"`
	GroupSubtitles map[string]string            `json:"groupSubtitles"`
	GroupBanners   map[string]string            `json:"groupBanners"`
	MemberQuotes   map[string]map[string]string `json:"memberQuotes"`
	DisclaimerText string                       `json:"disclaimerText"`
	InfoText       string                       `json:"infoText"`
}

// AlbumInfo lists the known versions of one album, used for admin form
// suggestions.
type AlbumInfo struct {
	Versions []string `json:"versions"`
}

// Metadata holds the configured taxonomy: which groups exist, in what order,
// which members belong to each, and the prefixes used when assigning display
// IDs. Albums maps group -> owner -> album name, where the owner is either a
// member name or the "group_albums" pseudo-owner for group releases.
type Metadata struct {
	GroupOrder       []string                                   `json:"groupOrder"`
	MemberOrder      map[string][]string                        `json:"memberOrder"`
	GroupLogos       map[string]string                          `json:"groupLogos"`
	MemberSignatures map[string]map[string]string               `json:"memberSignatures"`
	GroupPrefixes    map[string]string                          `json:"groupPrefixes"`
	MemberPrefixes   map[string]string                          `json:"memberPrefixes"`
	Albums           map[string]map[string]map[string]AlbumInfo `json:"albums"`
}

// GroupAlbumsOwner is the pseudo-member key under which group (as opposed to
// member) releases are filed in Metadata.Albums.
const GroupAlbumsOwner = "group_albums"

// Document locations for the settings collection.
const (
	SettingsCollection = "settings"
	SiteContentDoc     = "siteContent"
	MetadataDoc        = "metadata"
)

// DefaultSiteContent returns the content used when the settings document is
// absent or partial.
func DefaultSiteContent() SiteContent {
	return SiteContent{
		GroupSubtitles: map[string]string{},
		GroupBanners:   map[string]string{},
		MemberQuotes:   map[string]map[string]string{},
	}
}

// DefaultMetadata returns the taxonomy defaults, including the display-ID
// prefixes that ship with the site configuration.
func DefaultMetadata() Metadata {
	return Metadata{
		MemberOrder:      map[string][]string{},
		GroupLogos:       map[string]string{},
		MemberSignatures: map[string]map[string]string{},
		GroupPrefixes: map[string]string{
			"Red Velvet": "RV",
			"IU":         "I",
			"aespa":      "ae",
		},
		MemberPrefixes: map[string]string{
			"IU": "U",
		},
	}
}

// MembersOf returns the configured member list for a group, or nil when the
// group is unknown.
func (m Metadata) MembersOf(group string) []string {
	return m.MemberOrder[group]
}

// GroupIndex returns the position of group in the configured order, or -1.
func (m Metadata) GroupIndex(group string) int {
	for i, g := range m.GroupOrder {
		if g == group {
			return i
		}
	}
	return -1
}

// MemberIndex returns the position of member within its group's configured
// order, or -1.
func (m Metadata) MemberIndex(group, member string) int {
	for i, name := range m.MemberOrder[group] {
		if name == member {
			return i
		}
	}
	return -1
}

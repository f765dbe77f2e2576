// internal/content/content_test.go
package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsSurviveAbsentDocuments(t *testing.T) {
	sc := SiteContentFromFields(nil)
	assert.Empty(t, sc.Title)
	assert.NotNil(t, sc.GroupSubtitles)

	meta := MetadataFromFields(nil)
	assert.Equal(t, "RV", meta.GroupPrefixes["Red Velvet"])
	assert.Equal(t, "U", meta.MemberPrefixes["IU"])
	assert.Empty(t, meta.GroupOrder)
}

func TestFieldsLayerOverDefaults(t *testing.T) {
	sc := SiteContentFromFields(map[string]any{
		"title": "BananaBox Gallery",
		"groupSubtitles": map[string]any{
			"aespa": "æ",
		},
	})
	assert.Equal(t, "BananaBox Gallery", sc.Title)
	assert.Equal(t, "æ", sc.GroupSubtitles["aespa"])
	assert.Empty(t, sc.Subtitle)

	meta := MetadataFromFields(map[string]any{
		"groupOrder": []any{"aespa"},
		"groupPrefixes": map[string]any{
			"NewJeans": "NJ",
		},
	})
	assert.Equal(t, []string{"aespa"}, meta.GroupOrder)
	assert.Equal(t, "NJ", meta.GroupPrefixes["NewJeans"])
}

func TestMalformedFieldsFallBackToDefaults(t *testing.T) {
	meta := MetadataFromFields(map[string]any{
		"groupOrder": "not a list",
	})
	assert.Empty(t, meta.GroupOrder)
	assert.Equal(t, "RV", meta.GroupPrefixes["Red Velvet"], "defaults survive a bad document")
}

func TestOrderingHelpers(t *testing.T) {
	meta := DefaultMetadata()
	meta.GroupOrder = []string{"Red Velvet", "aespa"}
	meta.MemberOrder = map[string][]string{"aespa": {"Karina", "Winter"}}

	assert.Equal(t, 1, meta.GroupIndex("aespa"))
	assert.Equal(t, -1, meta.GroupIndex("IU"))
	assert.Equal(t, 1, meta.MemberIndex("aespa", "Winter"))
	assert.Equal(t, -1, meta.MemberIndex("aespa", "Hanni"))
}

func TestAlbumSuggestions(t *testing.T) {
	meta := DefaultMetadata()
	meta.Albums = map[string]map[string]map[string]AlbumInfo{
		"aespa": {
			GroupAlbumsOwner: {
				"Armageddon": {Versions: []string{"A Ver.", "B Ver."}},
			},
			"Karina": {
				"Solo Single": {Versions: []string{"Photobook"}},
			},
		},
	}

	assert.Equal(t, []string{"Armageddon", "Solo Single"}, meta.AlbumSuggestions("aespa", "Karina"))
	assert.Equal(t, []string{"Armageddon"}, meta.AlbumSuggestions("aespa", "Winter"))
	assert.Nil(t, meta.AlbumSuggestions("NewJeans", "Hanni"))

	assert.Equal(t, []string{"A Ver.", "B Ver."}, meta.VersionSuggestions("aespa", "Karina", "Armageddon"),
		"group release versions win")
	assert.Equal(t, []string{"Photobook"}, meta.VersionSuggestions("aespa", "Karina", "Solo Single"))
	assert.Nil(t, meta.VersionSuggestions("aespa", "Karina", "Unknown"))
}

// internal/storefront/engine_test.go
package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BananaBox69/kpopgallery/internal/basket"
	"github.com/BananaBox69/kpopgallery/internal/browse"
	"github.com/BananaBox69/kpopgallery/internal/catalog"
	"github.com/BananaBox69/kpopgallery/internal/content"
	"github.com/BananaBox69/kpopgallery/pkg/docstore"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func seedCard(store *docstore.MemoryStore, id, group, member, album, status string) {
	store.Seed(catalog.Collection, id, map[string]any{
		"displayId": id,
		"group":     group,
		"member":    member,
		"album":     album,
		"status":    status,
		"price":     5.0,
	})
}

func startEngine(t *testing.T, store *docstore.MemoryStore) *Engine {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	engine := NewEngine(store, func() time.Time { return testNow })
	engine.Start(ctx)

	waitCtx, waitCancel := context.WithTimeout(ctx, 2*time.Second)
	defer waitCancel()
	require.NoError(t, engine.WaitReady(waitCtx))
	return engine
}

func TestReadinessWaitsForAllThreeFeeds(t *testing.T) {
	store := docstore.NewMemory()
	engine := startEngine(t, store)

	select {
	case <-engine.Ready():
	default:
		t.Fatal("engine should be ready once every feed has delivered")
	}

	assert.Empty(t, engine.Cards())
	assert.Equal(t, content.DefaultSiteContent(), engine.SiteContent(),
		"absent settings documents leave the defaults in place")
}

func TestCardSnapshotReplacesState(t *testing.T) {
	store := docstore.NewMemory()
	seedCard(store, "c1", "aespa", "Winter", "Armageddon", "available")
	engine := startEngine(t, store)

	require.Len(t, engine.Cards(), 1)

	require.NoError(t, store.Set(context.Background(), catalog.Collection, "c2", map[string]any{
		"group": "aespa", "member": "Winter", "status": "available",
	}))
	assert.Len(t, engine.Cards(), 2)

	require.NoError(t, store.Delete(context.Background(), catalog.Collection, "c1"))
	cards := engine.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "c2", cards[0].DocID)
}

func TestSettingsSnapshotsReplaceState(t *testing.T) {
	store := docstore.NewMemory()
	engine := startEngine(t, store)

	require.NoError(t, store.Set(context.Background(), content.SettingsCollection, content.SiteContentDoc,
		map[string]any{"title": "BananaBox Gallery"}))
	assert.Equal(t, "BananaBox Gallery", engine.SiteContent().Title)

	require.NoError(t, store.Set(context.Background(), content.SettingsCollection, content.MetadataDoc,
		map[string]any{"groupOrder": []any{"aespa"}, "memberOrder": map[string]any{"aespa": []any{"Winter"}}}))
	assert.Equal(t, []string{"aespa"}, engine.Metadata().GroupOrder)

	require.NoError(t, store.Delete(context.Background(), content.SettingsCollection, content.SiteContentDoc))
	assert.Empty(t, engine.SiteContent().Title, "a deleted document falls back to the defaults")
}

func TestBasketPurgedWhenCardRetires(t *testing.T) {
	store := docstore.NewMemory()
	seedCard(store, "c1", "aespa", "Winter", "Armageddon", "available")
	engine := startEngine(t, store)

	require.True(t, engine.ToggleBasket("visitor-1", "c1"))
	require.Len(t, engine.Basket("visitor-1").Items, 1)

	require.NoError(t, store.Set(context.Background(), catalog.Collection, "c1",
		map[string]any{"status": "reserved"}))

	assert.Empty(t, engine.Basket("visitor-1").Items,
		"a reserved card leaves every basket on the next sync")
	assert.False(t, engine.ToggleBasket("visitor-1", "c1"),
		"a reserved card cannot be added back")
}

func TestBasketsAreSessionScoped(t *testing.T) {
	store := docstore.NewMemory()
	seedCard(store, "c1", "aespa", "Winter", "Armageddon", "available")
	engine := startEngine(t, store)

	require.True(t, engine.ToggleBasket("visitor-1", "c1"))
	assert.Empty(t, engine.Basket("visitor-2").Items)
	assert.True(t, engine.ToggleBasket("visitor-2", "c1"),
		"baskets do not reserve; two visitors can hold the same card")
}

func TestObserversRunInRegistrationOrder(t *testing.T) {
	store := docstore.NewMemory()
	engine := startEngine(t, store)

	var order []int
	engine.Subscribe(func() { order = append(order, 1) })
	engine.Subscribe(func() { order = append(order, 2) })

	require.NoError(t, store.Set(context.Background(), catalog.Collection, "c1",
		map[string]any{"status": "available"}))
	assert.Equal(t, []int{1, 2}, order)
}

func TestObserversSeeReconciledState(t *testing.T) {
	store := docstore.NewMemory()
	seedCard(store, "c1", "aespa", "Winter", "Armageddon", "available")
	engine := startEngine(t, store)

	require.True(t, engine.ToggleBasket("visitor-1", "c1"))

	var sawLen int
	engine.Subscribe(func() { sawLen = len(engine.Basket("visitor-1").Items) })

	require.NoError(t, store.Set(context.Background(), catalog.Collection, "c1",
		map[string]any{"status": "sold"}))
	assert.Zero(t, sawLen, "the basket is reconciled before observers run")
}

func TestSelectionPrunedOnSnapshot(t *testing.T) {
	store := docstore.NewMemory()
	seedCard(store, "c1", "aespa", "Winter", "Armageddon", "available")
	seedCard(store, "c2", "aespa", "Winter", "Armageddon", "available")
	engine := startEngine(t, store)

	require.True(t, engine.ToggleSelected("c1"))
	require.True(t, engine.ToggleSelected("c2"))

	require.NoError(t, store.Delete(context.Background(), catalog.Collection, "c1"))
	assert.Equal(t, []string{"c2"}, engine.SelectedIDs())
}

func TestSectionViewFiltersPerSession(t *testing.T) {
	store := docstore.NewMemory()
	store.Seed(content.SettingsCollection, content.MetadataDoc, map[string]any{
		"groupOrder":  []any{"aespa"},
		"memberOrder": map[string]any{"aespa": []any{"Winter"}},
	})
	seedCard(store, "c1", "aespa", "Winter", "Armageddon", "available")
	seedCard(store, "c2", "aespa", "Winter", "Drama", "available")
	seedCard(store, "c3", "aespa", "Winter", "Armageddon", "sold")
	engine := startEngine(t, store)

	sections := engine.Sections()
	require.Len(t, sections, 1)
	assert.Len(t, sections[0].Cards, 2, "sold cards are not browsable")

	engine.UpdateFilter("visitor-1", "aespa", "Winter", func(state *browse.FilterState) {
		state.Album = "Drama"
	})

	filtered := engine.Section("visitor-1", "aespa", "Winter")
	require.Len(t, filtered.Cards, 1)
	assert.Equal(t, "c2", filtered.Cards[0].DocID)

	other := engine.Section("visitor-2", "aespa", "Winter")
	assert.Len(t, other.Cards, 2, "filter state does not leak across sessions")

	engine.ResetFilter("visitor-1", "aespa", "Winter")
	assert.Len(t, engine.Section("visitor-1", "aespa", "Winter").Cards, 2)
}

func TestAdminGroupChangeResetsMemberFilter(t *testing.T) {
	store := docstore.NewMemory()
	engine := startEngine(t, store)

	f := engine.Admin().Filters
	f.Group = "aespa"
	engine.SetAdminFilters(f)
	f = engine.Admin().Filters
	f.Member = "Winter"
	engine.SetAdminFilters(f)
	require.Equal(t, "Winter", engine.Admin().Filters.Member)

	f = engine.Admin().Filters
	f.Group = "Red Velvet"
	engine.SetAdminFilters(f)
	assert.Equal(t, "All", engine.Admin().Filters.Member)
}

func TestCheckoutMessageUsesLiveBasket(t *testing.T) {
	store := docstore.NewMemory()
	seedCard(store, "c1", "aespa", "Winter", "Armageddon", "available")
	engine := startEngine(t, store)

	require.True(t, engine.ToggleBasket("visitor-1", "c1"))
	msg := engine.CheckoutMessage("visitor-1", basket.CheckoutOptions{Country: "Germany"})
	assert.Contains(t, msg, "TOTAL (1 cards): €5.00 (excl. shipping)")
	assert.Contains(t, msg, "Ship to: Germany")
}

// internal/storefront/engine.go
package storefront

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/BananaBox69/kpopgallery/internal/admin"
	"github.com/BananaBox69/kpopgallery/internal/basket"
	"github.com/BananaBox69/kpopgallery/internal/browse"
	"github.com/BananaBox69/kpopgallery/internal/catalog"
	"github.com/BananaBox69/kpopgallery/internal/content"
	"github.com/BananaBox69/kpopgallery/pkg/docstore"
)

// Observer is notified after every applied snapshot, once the engine state is
// fully consistent. Observers registered first are notified first.
type Observer func()

// Session holds the per-visitor view state: one filter state per carousel
// section and the basket. Sessions live in memory only and are keyed by an
// opaque token the transport layer supplies.
type Session struct {
	Filters *browse.FilterSet
	Basket  *basket.Basket
}

// Engine owns every piece of mutable view state and keeps it consistent with
// the document store. It subscribes to the card collection and the two
// settings documents; each delivery fully replaces the corresponding state.
// Card snapshots additionally reconcile every basket and prune the admin
// selection before observers run, so no observer ever sees a basket holding a
// card the snapshot retired.
type Engine struct {
	store docstore.Store
	now   func() time.Time

	mu        sync.Mutex
	cards     []catalog.Card
	content   content.SiteContent
	meta      content.Metadata
	sessions  map[string]*Session
	adminF    admin.Filters
	adminS    admin.Sort
	selected  map[string]struct{}
	observers []Observer

	cardsSeen   bool
	contentSeen bool
	metaSeen    bool
	ready       chan struct{}
	readyOnce   sync.Once
}

// NewEngine creates an engine over store. now defaults to time.Now and exists
// so tests can pin the clock used for "new" windows.
func NewEngine(store docstore.Store, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		store:    store,
		now:      now,
		content:  content.DefaultSiteContent(),
		meta:     content.DefaultMetadata(),
		sessions: map[string]*Session{},
		adminF:   admin.DefaultFilters(),
		adminS:   admin.DefaultSort(),
		selected: map[string]struct{}{},
		ready:    make(chan struct{}),
	}
}

// Start subscribes to the three change feeds. The watches run until ctx is
// cancelled; watch errors after the initial snapshot are logged and the feed
// is resubscribed after a short pause.
func (e *Engine) Start(ctx context.Context) {
	go e.watch(ctx, "cards", func(ctx context.Context) error {
		return e.store.WatchCollection(ctx, catalog.Collection, e.applyCards)
	})
	go e.watch(ctx, "site content", func(ctx context.Context) error {
		return e.store.WatchDocument(ctx, content.SettingsCollection, content.SiteContentDoc, e.applySiteContent)
	})
	go e.watch(ctx, "metadata", func(ctx context.Context) error {
		return e.store.WatchDocument(ctx, content.SettingsCollection, content.MetadataDoc, e.applyMetadata)
	})
}

func (e *Engine) watch(ctx context.Context, name string, run func(context.Context) error) {
	for {
		err := run(ctx)
		if ctx.Err() != nil {
			return
		}
		log.Printf("%s watch ended: %v; resubscribing", name, err)
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			return
		}
	}
}

// Ready is closed once all three feeds have delivered at least one snapshot.
// Until then view state is the defaults and the catalog is empty.
func (e *Engine) Ready() <-chan struct{} {
	return e.ready
}

// WaitReady blocks until the engine is ready or ctx expires.
func (e *Engine) WaitReady(ctx context.Context) error {
	select {
	case <-e.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for initial snapshots: %w", ctx.Err())
	}
}

func (e *Engine) applyCards(docs []docstore.Document) {
	cards := catalog.FromDocuments(docs, e.now())

	e.mu.Lock()
	e.cards = cards
	for _, sess := range e.sessions {
		sess.Basket.Reconcile(cards)
	}
	present := map[string]struct{}{}
	for _, c := range cards {
		present[c.DocID] = struct{}{}
	}
	for id := range e.selected {
		if _, ok := present[id]; !ok {
			delete(e.selected, id)
		}
	}
	e.cardsSeen = true
	e.checkReadyLocked()
	observers := append([]Observer(nil), e.observers...)
	e.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

func (e *Engine) applySiteContent(doc docstore.Document, ok bool) {
	sc := content.DefaultSiteContent()
	if ok {
		sc = content.SiteContentFromFields(doc.Fields)
	}

	e.mu.Lock()
	e.content = sc
	e.contentSeen = true
	e.checkReadyLocked()
	observers := append([]Observer(nil), e.observers...)
	e.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

func (e *Engine) applyMetadata(doc docstore.Document, ok bool) {
	meta := content.DefaultMetadata()
	if ok {
		meta = content.MetadataFromFields(doc.Fields)
	}

	e.mu.Lock()
	e.meta = meta
	e.metaSeen = true
	e.checkReadyLocked()
	observers := append([]Observer(nil), e.observers...)
	e.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

func (e *Engine) checkReadyLocked() {
	if e.cardsSeen && e.contentSeen && e.metaSeen {
		e.readyOnce.Do(func() { close(e.ready) })
	}
}

// Subscribe registers an observer. Observers run after every applied
// snapshot, in registration order, outside the engine lock.
func (e *Engine) Subscribe(fn Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// Cards returns a copy of the current catalog snapshot.
func (e *Engine) Cards() []catalog.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]catalog.Card, len(e.cards))
	copy(out, e.cards)
	return out
}

// SiteContent returns the current display text.
func (e *Engine) SiteContent() content.SiteContent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.content
}

// Metadata returns the current taxonomy.
func (e *Engine) Metadata() content.Metadata {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.meta
}

func (e *Engine) session(id string) *Session {
	sess, ok := e.sessions[id]
	if !ok {
		sess = &Session{Filters: browse.NewFilterSet(), Basket: basket.New()}
		e.sessions[id] = sess
	}
	return sess
}

// Sections returns the carousel sections in metadata order, browsable cards
// only, empty sections skipped.
func (e *Engine) Sections() []browse.Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return browse.Sections(e.cards, e.meta)
}

// SectionView is one rendered carousel section for a session: the filtered,
// carousel-ordered cards plus the filter state and option lists they were
// produced from.
type SectionView struct {
	Group    string
	Member   string
	Cards    []catalog.Card
	State    browse.FilterState
	Albums   []string
	Versions []string
	Pages    int
}

// Section computes the view of one carousel section under the session's
// current filter state.
func (e *Engine) Section(sessionID, group, member string) SectionView {
	e.mu.Lock()
	defer e.mu.Unlock()

	all := catalog.GroupByMember(e.cards).Cards(group, member)
	browsable := all[:0:0]
	for _, c := range all {
		if c.Browsable() {
			browsable = append(browsable, c)
		}
	}

	state := *e.session(sessionID).Filters.Get(group, member)
	filtered := browse.Apply(browsable, state, e.now())
	browse.SortForCarousel(filtered)

	return SectionView{
		Group:    group,
		Member:   member,
		Cards:    filtered,
		State:    state,
		Albums:   browse.AlbumOptions(browsable),
		Versions: browse.VersionOptions(browsable),
		Pages:    browse.PageCount(len(filtered)),
	}
}

// UpdateFilter applies fn to a section's filter state.
func (e *Engine) UpdateFilter(sessionID, group, member string, fn func(*browse.FilterState)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session(sessionID).Filters.Get(group, member))
}

// ToggleFilterTag flips one tag on a section's filter state.
func (e *Engine) ToggleFilterTag(sessionID, group, member string, tag browse.Tag) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session(sessionID).Filters.ToggleTag(group, member, tag)
}

// ResetFilter returns a section's filter state to the defaults.
func (e *Engine) ResetFilter(sessionID, group, member string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session(sessionID).Filters.Reset(group, member)
}

// ToggleBasket toggles a card in the session's basket against the current
// snapshot and reports whether it is in the basket afterwards.
func (e *Engine) ToggleBasket(sessionID, docID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session(sessionID).Basket.Toggle(docID, e.cards)
}

// BasketView is the session basket rendered for display.
type BasketView struct {
	Items []catalog.Card
	Total string
}

// Basket returns the session's basket contents and total.
func (e *Engine) Basket(sessionID string) BasketView {
	e.mu.Lock()
	defer e.mu.Unlock()
	b := e.session(sessionID).Basket
	return BasketView{Items: b.Items(), Total: b.Total().StringFixed(2)}
}

// ClearBasket empties the session's basket.
func (e *Engine) ClearBasket(sessionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session(sessionID).Basket.Clear()
}

// CheckoutMessage renders the session basket as the text handed to the
// seller, using the supplied shipping details.
func (e *Engine) CheckoutMessage(sessionID string, opts basket.CheckoutOptions) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return basket.CheckoutMessage(e.session(sessionID).Basket, opts)
}

// Admin computes the back-office view under the current admin state.
func (e *Engine) Admin() admin.View {
	e.mu.Lock()
	defer e.mu.Unlock()

	cards := admin.Apply(e.cards, e.adminF, e.adminS, e.meta, e.now())
	selected := make(map[string]bool, len(e.selected))
	for id := range e.selected {
		selected[id] = true
	}
	return admin.View{
		Cards:    cards,
		Selected: selected,
		Filters:  e.adminF,
		Sort:     e.adminS,
		Members:  admin.MemberOptions(e.meta, e.adminF.Group),
	}
}

// SetAdminFilters replaces the admin filter state. Changing the group resets
// the member filter so a stale member never filters the new group to nothing.
func (e *Engine) SetAdminFilters(f admin.Filters) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if f.Group != e.adminF.Group {
		f.Member = "All"
	}
	e.adminF = f
}

// SetAdminSort replaces the admin sort state.
func (e *Engine) SetAdminSort(s admin.Sort) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.adminS = s
}

// ToggleSelected flips a card in the admin selection and reports whether it
// is selected afterwards.
func (e *Engine) ToggleSelected(docID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.selected[docID]; ok {
		delete(e.selected, docID)
		return false
	}
	e.selected[docID] = struct{}{}
	return true
}

// ClearSelection deselects every card.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = map[string]struct{}{}
}

// SelectedIDs returns the selected document IDs in snapshot order.
func (e *Engine) SelectedIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var ids []string
	for _, c := range e.cards {
		if _, ok := e.selected[c.DocID]; ok {
			ids = append(ids, c.DocID)
		}
	}
	return ids
}

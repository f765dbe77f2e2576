// internal/admin/handler.go
package admin

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BananaBox69/kpopgallery/internal/catalog"
	"github.com/BananaBox69/kpopgallery/internal/content"
	"github.com/BananaBox69/kpopgallery/internal/pricing"
)

// Engine is the slice of the storefront engine the back-office needs: the
// computed view plus the filter, sort and selection state mutators.
type Engine interface {
	Admin() View
	SetAdminFilters(Filters)
	SetAdminSort(Sort)
	ToggleSelected(docID string) bool
	ClearSelection()
	SelectedIDs() []string
	Cards() []catalog.Card
	Metadata() content.Metadata
}

type Handler struct {
	engine  Engine
	cards   catalog.Service
	content content.Service
}

func NewHandler(engine Engine, cards catalog.Service, contentSvc content.Service) *Handler {
	return &Handler{engine: engine, cards: cards, content: contentSvc}
}

// Routes mounts the back-office API. Callers are expected to wrap these in
// the admin session middleware.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/view", h.handleView)
	r.Post("/filters", h.handleSetFilters)
	r.Post("/sort", h.handleSetSort)

	r.Post("/selection/toggle", h.handleToggleSelection)
	r.Post("/selection/clear", h.handleClearSelection)
	r.Post("/selection/discount", h.handleBulkDiscount)
	r.Post("/selection/status", h.handleBulkStatus)
	r.Post("/selection/delete", h.handleBulkDelete)

	r.Post("/cards/{id}/rare", h.handleToggleRare)

	r.Put("/site-content", h.handleSaveSiteContent)
	r.Put("/metadata", h.handleSaveMetadata)
	r.Get("/suggestions", h.handleSuggestions)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	view := h.engine.Admin()

	type cardRow struct {
		catalog.Card
		FinalPrice string `json:"finalPrice"`
		Selected   bool   `json:"selected"`
	}
	rows := make([]cardRow, 0, len(view.Cards))
	for _, c := range view.Cards {
		rows = append(rows, cardRow{
			Card:       c,
			FinalPrice: c.FinalPrice().StringFixed(2),
			Selected:   view.Selected[c.DocID],
		})
	}

	json.NewEncoder(w).Encode(map[string]any{
		"cards":         rows,
		"filters":       view.Filters,
		"sort":          view.Sort,
		"memberOptions": view.Members,
		"selectedCount": len(view.Selected),
	})
}

func (h *Handler) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var f Filters
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.engine.SetAdminFilters(f)
	h.handleView(w, r)
}

func (h *Handler) handleSetSort(w http.ResponseWriter, r *http.Request) {
	var s Sort
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if s.By == "" {
		s.By = SortDefault
	}
	if s.Order == "" {
		s.Order = Asc
	}
	h.engine.SetAdminSort(s)
	h.handleView(w, r)
}

func (h *Handler) handleToggleSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CardID string `json:"cardId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	selected := h.engine.ToggleSelected(req.CardID)
	json.NewEncoder(w).Encode(map[string]any{
		"selected":      selected,
		"selectedCount": len(h.engine.SelectedIDs()),
	})
}

func (h *Handler) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleBulkDiscount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tier int `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tier := pricing.Tier(req.Tier)
	if !tier.Valid() {
		http.Error(w, fmt.Sprintf("unknown discount tier %d", req.Tier), http.StatusBadRequest)
		return
	}

	ids := h.engine.SelectedIDs()
	if err := h.cards.BulkUpdate(r.Context(), ids, "discount", int(tier)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int{"updated": len(ids)})
}

func (h *Handler) handleBulkStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status catalog.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	switch req.Status {
	case catalog.StatusAvailable, catalog.StatusReserved, catalog.StatusSold, catalog.StatusArchived:
	default:
		http.Error(w, fmt.Sprintf("unknown status %q", req.Status), http.StatusBadRequest)
		return
	}

	ids := h.engine.SelectedIDs()
	if err := h.cards.BulkUpdate(r.Context(), ids, "status", string(req.Status)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int{"updated": len(ids)})
}

func (h *Handler) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	ids := h.engine.SelectedIDs()
	if err := h.cards.BulkDelete(r.Context(), ids); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.engine.ClearSelection()
	json.NewEncoder(w).Encode(map[string]int{"deleted": len(ids)})
}

func (h *Handler) handleToggleRare(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "id")
	var current *catalog.Card
	for _, c := range h.engine.Cards() {
		if c.DocID == docID {
			card := c
			current = &card
			break
		}
	}
	if current == nil {
		http.Error(w, "card not found", http.StatusNotFound)
		return
	}

	if err := h.cards.UpdateCard(r.Context(), docID, map[string]any{"isRare": !current.IsRare}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"isRare": !current.IsRare})
}

func (h *Handler) handleSaveSiteContent(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.content.SaveSiteContent(r.Context(), fields); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSaveMetadata(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.content.SaveMetadata(r.Context(), fields); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	meta := h.engine.Metadata()
	group := q.Get("group")
	member := q.Get("member")

	resp := map[string]any{
		"albums": meta.AlbumSuggestions(group, member),
	}
	if album := q.Get("album"); album != "" {
		resp["versions"] = meta.VersionSuggestions(group, member, album)
	}
	json.NewEncoder(w).Encode(resp)
}

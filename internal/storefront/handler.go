// internal/storefront/handler.go
package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/BananaBox69/kpopgallery/internal/basket"
	"github.com/BananaBox69/kpopgallery/internal/browse"
	"github.com/BananaBox69/kpopgallery/internal/catalog"
)

// VisitorCookie identifies one browsing session. It is minted on first
// contact and carries no account identity.
const VisitorCookie = "gallery_visitor"

type sessionKey struct{}

// EnsureVisitor mints the visitor cookie when absent and places the session
// ID on the request context.
func EnsureVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(VisitorCookie); err == nil && cookie.Value != "" {
			id = cookie.Value
		} else {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     VisitorCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

func sessionID(r *http.Request) string {
	if id, ok := r.Context().Value(sessionKey{}).(string); ok {
		return id
	}
	return ""
}

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// Routes mounts the public storefront API.
func (h *Handler) Routes(r chi.Router) {
	r.Use(EnsureVisitor)

	r.Get("/content", h.handleContent)
	r.Get("/sections", h.handleSections)
	r.Get("/sections/{group}/{member}", h.handleSection)
	r.Post("/sections/{group}/{member}/filters", h.handleSetFilters)
	r.Post("/sections/{group}/{member}/filters/tags", h.handleToggleTag)
	r.Post("/sections/{group}/{member}/filters/reset", h.handleResetFilters)

	r.Get("/basket", h.handleBasket)
	r.Post("/basket/toggle", h.handleBasketToggle)
	r.Post("/basket/clear", h.handleBasketClear)
	r.Post("/basket/checkout", h.handleCheckout)
}

func (h *Handler) handleContent(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"siteContent": h.engine.SiteContent(),
		"metadata":    h.engine.Metadata(),
	})
}

func (h *Handler) handleSections(w http.ResponseWriter, r *http.Request) {
	sections := h.engine.Sections()
	out := make([]map[string]any, 0, len(sections))
	for _, s := range sections {
		out = append(out, map[string]any{
			"group":     s.Group,
			"member":    s.Member,
			"cardCount": len(s.Cards),
		})
	}
	json.NewEncoder(w).Encode(out)
}

// cardView is one card as rendered for the public storefront: the record
// plus the derived display fields.
type cardView struct {
	catalog.Card
	FinalPrice string `json:"finalPrice"`
	IsNew      bool   `json:"isNew"`
	InBasket   bool   `json:"inBasket"`
}

func (h *Handler) cardViews(sessionID string, cards []catalog.Card) []cardView {
	b := h.engine.Basket(sessionID)
	inBasket := map[string]bool{}
	for _, item := range b.Items {
		inBasket[item.DocID] = true
	}
	now := time.Now()
	out := make([]cardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardView{
			Card:       c,
			FinalPrice: c.FinalPrice().StringFixed(2),
			IsNew:      c.IsNew(now),
			InBasket:   inBasket[c.DocID],
		})
	}
	return out
}

func (h *Handler) handleSection(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	member := chi.URLParam(r, "member")
	view := h.engine.Section(sessionID(r), group, member)

	json.NewEncoder(w).Encode(map[string]any{
		"group":        view.Group,
		"member":       view.Member,
		"cards":        h.cardViews(sessionID(r), view.Cards),
		"filters":      view.State,
		"albums":       view.Albums,
		"versions":     view.Versions,
		"pages":        view.Pages,
		"cardsPerPage": browse.CardsPerPage,
	})
}

func (h *Handler) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SearchTerm *string `json:"searchTerm"`
		Album      *string `json:"album"`
		Version    *string `json:"version"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.engine.UpdateFilter(sessionID(r), chi.URLParam(r, "group"), chi.URLParam(r, "member"), func(state *browse.FilterState) {
		if req.SearchTerm != nil {
			state.SearchTerm = *req.SearchTerm
		}
		if req.Album != nil {
			state.Album = *req.Album
		}
		if req.Version != nil {
			state.Version = *req.Version
		}
	})
	h.handleSection(w, r)
}

func (h *Handler) handleToggleTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tag string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.engine.ToggleFilterTag(sessionID(r), chi.URLParam(r, "group"), chi.URLParam(r, "member"), browse.Tag(req.Tag))
	h.handleSection(w, r)
}

func (h *Handler) handleResetFilters(w http.ResponseWriter, r *http.Request) {
	h.engine.ResetFilter(sessionID(r), chi.URLParam(r, "group"), chi.URLParam(r, "member"))
	h.handleSection(w, r)
}

func (h *Handler) handleBasket(w http.ResponseWriter, r *http.Request) {
	view := h.engine.Basket(sessionID(r))
	json.NewEncoder(w).Encode(map[string]any{
		"items": h.cardViews(sessionID(r), view.Items),
		"total": view.Total,
		"count": len(view.Items),
	})
}

func (h *Handler) handleBasketToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CardID string `json:"cardId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inBasket := h.engine.ToggleBasket(sessionID(r), req.CardID)
	view := h.engine.Basket(sessionID(r))
	json.NewEncoder(w).Encode(map[string]any{
		"inBasket": inBasket,
		"total":    view.Total,
		"count":    len(view.Items),
	})
}

func (h *Handler) handleBasketClear(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearBasket(sessionID(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req basket.CheckoutOptions
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{
		"message": h.engine.CheckoutMessage(sessionID(r), req),
	})
}

// internal/catalog/handler.go
package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BananaBox69/kpopgallery/pkg/docstore"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the card write API. Callers are expected to wrap these in
// the admin session middleware.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/cards", h.handleCreateCard)
	r.Patch("/cards/{id}", h.handleUpdateCard)
	r.Delete("/cards/{id}", h.handleDeleteCard)
}

func (h *Handler) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var input CardInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := h.service.CreateCard(r.Context(), input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrUnknownGroup) || errors.Is(err, ErrUnknownMember) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(card)
}

func (h *Handler) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateCard(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	if errors.Is(err, docstore.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

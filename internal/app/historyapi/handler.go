package historyapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"signaler-launcher/internal/history"
	"signaler-launcher/internal/pkg/render"
)

type Handler struct {
	store *history.Store
}

func NewHandler(store *history.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoute(r *chi.Mux) {
	r.Get("/api/history", h.Handle)
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entries := h.store.List()
	if entries == nil {
		entries = []history.Entry{}
	}
	render.ChiJSON(w, http.StatusOK, entries)
}

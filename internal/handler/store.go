package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"toposcope/internal/domain"
	"toposcope/internal/repository"
)

// StoreHandler serves the layout store contract from a repository: GET the
// base path for names, GET a name for one layout, POST a name to overwrite
// it. A session can point at this handler instead of an external store.
type StoreHandler struct {
	repo repository.LayoutRepository
}

// NewStoreHandler creates a store handler over a repository
func NewStoreHandler(repo repository.LayoutRepository) *StoreHandler {
	return &StoreHandler{repo: repo}
}

// List returns all saved layout names
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("Failed to list layouts: %v", err)
		writeError(w, "Failed to list layouts", err.Error(), http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, names, http.StatusOK)
}

// Get returns one saved layout by name
func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	layout, err := h.repo.Get(r.Context(), name)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, "Layout not found", name, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("Failed to get layout %q: %v", name, err)
		writeError(w, "Failed to get layout", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, layout, http.StatusOK)
}

// Put saves a layout under the given name, overwriting any existing one
func (h *StoreHandler) Put(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, "Invalid layout name", "name must not be empty", http.StatusBadRequest)
		return
	}

	layout := domain.NewLayout()
	if err := json.NewDecoder(r.Body).Decode(layout); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.repo.Put(r.Context(), name, layout); err != nil {
		log.Printf("Failed to save layout %q: %v", name, err)
		writeError(w, "Failed to save layout", err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/uslu-pos/api/internal/storage"
)

// ContactStore defines the directory methods needed by contact handlers.
// Satisfied by *storage.ContactStore; narrow interface for testability.
type ContactStore interface {
	Save(phone, address string) error
	Delete(phone string) error
	Get(phone string) (storage.Contact, bool)
	FindBySuffix(suffix string) (string, storage.Contact, bool)
	All() map[string]storage.Contact
}

// ContactHandler handles the phone → address directory used to prefill
// delivery orders.
type ContactHandler struct {
	store ContactStore
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(store ContactStore) *ContactHandler {
	return &ContactHandler{store: store}
}

// RegisterRoutes registers contact endpoints on the given Chi router.
func (h *ContactHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/lookup", h.Lookup)
	r.Route("/{phone}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Save)
		r.Delete("/", h.Delete)
	})
}

// --- Request / Response types ---

type saveContactRequest struct {
	Address string `json:"address"`
}

type contactResponse struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// --- Handlers ---

// List returns the whole directory sorted by phone number.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	all := h.store.All()
	resp := make([]contactResponse, 0, len(all))
	for phone, c := range all {
		resp = append(resp, contactResponse{Phone: phone, Address: c.Address})
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].Phone < resp[j].Phone })
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single contact by exact phone number.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")
	c, ok := h.store.Get(phone)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "contact not found"})
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{Phone: phone, Address: c.Address})
}

// Lookup finds a contact whose number ends with ?suffix=. The order
// screen uses it to prefill phone and address from the last four digits.
func (h *ContactHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	suffix := r.URL.Query().Get("suffix")
	if suffix == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "suffix is required"})
		return
	}

	phone, c, ok := h.store.FindBySuffix(suffix)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "contact not found"})
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{Phone: phone, Address: c.Address})
}

// Save creates or overwrites the address for a phone number.
func (h *ContactHandler) Save(w http.ResponseWriter, r *http.Request) {
	phone, err := url.PathUnescape(chi.URLParam(r, "phone"))
	if err != nil || phone == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid phone"})
		return
	}

	var req saveContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Address == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "address is required"})
		return
	}

	if err := h.store.Save(phone, req.Address); err != nil {
		log.Printf("ERROR: save contact: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{Phone: phone, Address: req.Address})
}

// Delete removes a contact. Unknown numbers succeed; the outcome is the
// same either way.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")
	if err := h.store.Delete(phone); err != nil {
		log.Printf("ERROR: delete contact: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/arcanalabs/arcana-api/internal/api/shared"
	"github.com/arcanalabs/arcana-api/internal/domain"
	"github.com/arcanalabs/arcana-api/internal/store"
)

// DeckHandler serves the tarot deck CRUD endpoints.
type DeckHandler struct {
	decks     store.DeckStore
	validator *validator.Validate
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(decks store.DeckStore) *DeckHandler {
	return &DeckHandler{
		decks:     decks,
		validator: validator.New(),
	}
}

// Create handles POST /api/decks.
func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req DeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	deck, err := domain.NewDeck(req.Name, req.Description, req.Cards)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck data: "+err.Error())
		return
	}

	if err := h.decks.Create(r.Context(), deck); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// Get handles GET /api/decks/{id}.
func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.decks.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// List handles GET /api/decks.
func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	decks, err := h.decks.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if decks == nil {
		decks = []*domain.Deck{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// Update handles PUT /api/decks/{id}.
func (h *DeckHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req DeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	existing, err := h.decks.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Cards = req.Cards
	existing.UpdatedAt = time.Now().UTC()

	if err := h.decks.Update(r.Context(), existing); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, existing)
}

// Delete handles DELETE /api/decks/{id}.
func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.decks.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/arcanalabs/arcana-api/internal/api/shared"
	"github.com/arcanalabs/arcana-api/internal/domain"
	"github.com/arcanalabs/arcana-api/internal/store"
)

// SpreadHandler serves the tarot spread CRUD endpoints.
type SpreadHandler struct {
	spreads   store.SpreadStore
	validator *validator.Validate
}

// NewSpreadHandler creates a new SpreadHandler.
func NewSpreadHandler(spreads store.SpreadStore) *SpreadHandler {
	return &SpreadHandler{
		spreads:   spreads,
		validator: validator.New(),
	}
}

// Create handles POST /api/spreads.
func (h *SpreadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SpreadRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	spread, err := domain.NewSpread(req.Name, req.Description, req.Positions)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid spread data: "+err.Error())
		return
	}

	if err := h.spreads.Create(r.Context(), spread); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, spread)
}

// Get handles GET /api/spreads/{id}.
func (h *SpreadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	spread, err := h.spreads.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, spread)
}

// List handles GET /api/spreads.
func (h *SpreadHandler) List(w http.ResponseWriter, r *http.Request) {
	spreads, err := h.spreads.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if spreads == nil {
		spreads = []*domain.Spread{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, spreads)
}

// Update handles PUT /api/spreads/{id}.
func (h *SpreadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SpreadRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	existing, err := h.spreads.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Positions = req.Positions
	existing.UpdatedAt = time.Now().UTC()

	if err := h.spreads.Update(r.Context(), existing); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, existing)
}

// Delete handles DELETE /api/spreads/{id}.
func (h *SpreadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.spreads.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

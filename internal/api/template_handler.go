package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/arcanalabs/arcana-api/internal/api/shared"
	"github.com/arcanalabs/arcana-api/internal/domain"
	"github.com/arcanalabs/arcana-api/internal/store"
)

// TemplateHandler serves the prompt template CRUD endpoints used by the admin
// editor.
type TemplateHandler struct {
	templates store.TemplateStore
	validator *validator.Validate
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templates store.TemplateStore) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
		validator: validator.New(),
	}
}

// Create handles POST /api/templates.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tpl, err := domain.NewPromptTemplate(req.Key, req.SystemPrompt, req.Prompt, req.Temperature, req.MaxTokens)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid template data: "+err.Error())
		return
	}

	if err := h.templates.Create(r.Context(), tpl); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tpl)
}

// Get handles GET /api/templates/{id}.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tpl, err := h.templates.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tpl)
}

// List handles GET /api/templates.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if templates == nil {
		templates = []*domain.PromptTemplate{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, templates)
}

// Update handles PUT /api/templates/{id}.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req TemplateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	existing, err := h.templates.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	existing.Key = req.Key
	existing.SystemPrompt = req.SystemPrompt
	existing.Prompt = req.Prompt
	existing.Temperature = req.Temperature
	existing.MaxTokens = req.MaxTokens
	existing.UpdatedAt = time.Now().UTC()

	if err := h.templates.Update(r.Context(), existing); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, existing)
}

// Delete handles DELETE /api/templates/{id}.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.templates.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

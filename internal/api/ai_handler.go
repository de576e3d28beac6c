package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/arcanalabs/arcana-api/internal/api/shared"
	"github.com/arcanalabs/arcana-api/internal/generation"
	"github.com/arcanalabs/arcana-api/internal/service/analysis"
)

// GenerationService is the slice of the generation pipeline the handlers use.
type GenerationService interface {
	Generate(ctx context.Context, req *generation.GenerationRequest) (any, error)
	Chat(ctx context.Context, req *generation.ChatRequest) (string, error)
}

// AnalysisService is the slice of the document analysis service the handlers
// use.
type AnalysisService interface {
	AnalyzeDocument(ctx context.Context, req *analysis.Request) (any, error)
	AnalyzeDocuments(ctx context.Context, req *analysis.Request) (any, error)
}

// AIHandler serves the AI proxy endpoints: structured generation, chat
// passthrough, and document analysis.
type AIHandler struct {
	generation GenerationService
	analysis   AnalysisService
	validator  *validator.Validate
}

// NewAIHandler creates a new AIHandler with the given services.
func NewAIHandler(generationSvc GenerationService, analysisSvc AnalysisService) *AIHandler {
	return &AIHandler{
		generation: generationSvc,
		analysis:   analysisSvc,
		validator:  validator.New(),
	}
}

// Generate handles POST /api/ai/generate. A terminal retry exhaustion is
// still a 200: the body is the structured failure object, and the client
// decides how to surface it.
func (h *AIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generation.GenerationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.generation.Generate(r.Context(), &req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Chat handles POST /api/ai/chat: one provider call, plain text back, no
// retries or JSON enforcement.
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req generation.ChatRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	response, err := h.generation.Chat(r.Context(), &req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ChatResponse{Response: response})
}

// AnalyzeDocument handles POST /api/ai/analyze-document.
func (h *AIHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	var req analysis.Request
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.analysis.AnalyzeDocument(r.Context(), &req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// AnalyzeDocuments handles POST /api/ai/analyze-documents.
func (h *AIHandler) AnalyzeDocuments(w http.ResponseWriter, r *http.Request) {
	var req analysis.Request
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.analysis.AnalyzeDocuments(r.Context(), &req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

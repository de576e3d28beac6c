package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/arcanalabs/arcana-api/internal/api/shared"
	"github.com/arcanalabs/arcana-api/internal/domain"
	"github.com/arcanalabs/arcana-api/internal/store"
)

// CourseHandler serves the course CRUD endpoints. Courses are also reachable
// by slug for the public content surface.
type CourseHandler struct {
	courses   store.CourseStore
	validator *validator.Validate
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courses store.CourseStore) *CourseHandler {
	return &CourseHandler{
		courses:   courses,
		validator: validator.New(),
	}
}

// Create handles POST /api/courses.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	course, err := domain.NewCourse(req.Slug, req.Title, req.Description, req.Lessons)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid course data: "+err.Error())
		return
	}
	course.Published = req.Published

	if err := h.courses.Create(r.Context(), course); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, course)
}

// Get handles GET /api/courses/{id}.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	course, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// GetBySlug handles GET /api/courses/slug/{slug}.
func (h *CourseHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Slug is required")
		return
	}

	course, err := h.courses.GetBySlug(r.Context(), slug)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// List handles GET /api/courses.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if courses == nil {
		courses = []*domain.Course{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, courses)
}

// Update handles PUT /api/courses/{id}.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	existing, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	existing.Slug = req.Slug
	existing.Title = req.Title
	existing.Description = req.Description
	existing.Lessons = req.Lessons
	existing.Published = req.Published
	existing.UpdatedAt = time.Now().UTC()

	if err := h.courses.Update(r.Context(), existing); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, existing)
}

// Delete handles DELETE /api/courses/{id}.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.courses.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

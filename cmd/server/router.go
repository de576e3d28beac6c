package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arcanalabs/arcana-api/internal/api"
	apiMiddleware "github.com/arcanalabs/arcana-api/internal/api/middleware"
)

// setupRouter configures all routes and middleware from the application's
// dependencies.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	tokenLifetime := time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier, tokenLifetime)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	aiHandler := api.NewAIHandler(app.generationService, app.analysisService)
	templateHandler := api.NewTemplateHandler(app.templateStore)
	deckHandler := api.NewDeckHandler(app.deckStore)
	spreadHandler := api.NewSpreadHandler(app.spreadStore)
	courseHandler := api.NewCourseHandler(app.courseStore)
	horoscopeHandler := api.NewHoroscopeHandler(app.horoscopeService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Get("/horoscopes/{sign}", horoscopeHandler.Get)

		r.Get("/decks", deckHandler.List)
		r.Get("/decks/{id}", deckHandler.Get)
		r.Get("/spreads", spreadHandler.List)
		r.Get("/spreads/{id}", spreadHandler.Get)
		r.Get("/courses", courseHandler.List)
		r.Get("/courses/{id}", courseHandler.Get)
		r.Get("/courses/slug/{slug}", courseHandler.GetBySlug)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/ai/generate", aiHandler.Generate)
			r.Post("/ai/chat", aiHandler.Chat)
			r.Post("/ai/analyze-document", aiHandler.AnalyzeDocument)
			r.Post("/ai/analyze-documents", aiHandler.AnalyzeDocuments)

			r.Post("/templates", templateHandler.Create)
			r.Get("/templates", templateHandler.List)
			r.Get("/templates/{id}", templateHandler.Get)
			r.Put("/templates/{id}", templateHandler.Update)
			r.Delete("/templates/{id}", templateHandler.Delete)

			r.Post("/decks", deckHandler.Create)
			r.Put("/decks/{id}", deckHandler.Update)
			r.Delete("/decks/{id}", deckHandler.Delete)

			r.Post("/spreads", spreadHandler.Create)
			r.Put("/spreads/{id}", spreadHandler.Update)
			r.Delete("/spreads/{id}", spreadHandler.Delete)

			r.Post("/courses", courseHandler.Create)
			r.Put("/courses/{id}", courseHandler.Update)
			r.Delete("/courses/{id}", courseHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

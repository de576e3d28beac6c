package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/arcanalabs/arcana-api/internal/config"
	"github.com/arcanalabs/arcana-api/internal/generation"
	"github.com/arcanalabs/arcana-api/internal/platform/postgres"
	"github.com/arcanalabs/arcana-api/internal/platform/providers"
	"github.com/arcanalabs/arcana-api/internal/service/analysis"
	"github.com/arcanalabs/arcana-api/internal/service/auth"
	"github.com/arcanalabs/arcana-api/internal/service/horoscope"
	"github.com/arcanalabs/arcana-api/internal/store"
)

// application holds the shared application dependencies so wiring happens in
// one place and cleanup can close them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore      store.UserStore
	templateStore  store.TemplateStore
	deckStore      store.DeckStore
	spreadStore    store.SpreadStore
	courseStore    store.CourseStore
	horoscopeStore store.HoroscopeStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	registry          *generation.Registry
	generationService *generation.Service
	analysisService   *analysis.Service
	horoscopeService  *horoscope.Service
}

// newApplication wires all dependencies from the loaded configuration.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("initialize JWT service: %w", err)
	}
	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewUserStore(db, log)
	app.templateStore = postgres.NewTemplateStore(db, log)
	app.deckStore = postgres.NewDeckStore(db, log)
	app.spreadStore = postgres.NewSpreadStore(db, log)
	app.courseStore = postgres.NewCourseStore(db, log)
	app.horoscopeStore = postgres.NewHoroscopeStore(db, log)

	app.registry, err = buildProviderRegistry(context.Background(), cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("initialize provider registry: %w", err)
	}

	app.generationService, err = generation.NewService(app.registry, log)
	if err != nil {
		return nil, fmt.Errorf("initialize generation service: %w", err)
	}

	app.analysisService, err = analysis.NewService(app.registry, app.templateStore, log)
	if err != nil {
		return nil, fmt.Errorf("initialize analysis service: %w", err)
	}

	app.horoscopeService, err = horoscope.NewService(
		app.generationService,
		app.templateStore,
		app.horoscopeStore,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("initialize horoscope service: %w", err)
	}

	log.Info("application initialized",
		"default_provider", cfg.AI.DefaultProvider)
	return app, nil
}

// buildProviderRegistry constructs every adapter and registers it with its
// configured default model. Adapters without API keys are registered too;
// they reject calls lazily.
func buildProviderRegistry(ctx context.Context, cfg config.AIConfig) (*generation.Registry, error) {
	defaultProvider, err := generation.ParseProviderID(cfg.DefaultProvider)
	if err != nil {
		return nil, err
	}

	// One shared client keeps connection reuse across the OpenAI-compatible
	// providers.
	httpClient := &http.Client{Timeout: 120 * time.Second}

	registry := generation.NewRegistry(defaultProvider)
	registry.Register(providers.NewDeepSeek(cfg.DeepSeek, httpClient), cfg.DeepSeek.Model)
	registry.Register(providers.NewOpenAI(cfg.OpenAI, httpClient), cfg.OpenAI.Model)
	registry.Register(providers.NewGrok(cfg.Grok, httpClient), cfg.Grok.Model)
	registry.Register(providers.NewQwen(cfg.Qwen, httpClient), cfg.Qwen.Model)

	google, err := providers.NewGoogle(ctx, cfg.Google)
	if err != nil {
		return nil, err
	}
	registry.Register(google, cfg.Google.Model)

	return registry, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()
	return app.startHTTPServer(ctx, router)
}

// cleanup releases application resources on shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}

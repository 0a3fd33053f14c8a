package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/blindquote/internal/auth"
	"github.com/loganlanou/blindquote/internal/pricing"
	"github.com/loganlanou/blindquote/internal/quote"
	"github.com/loganlanou/blindquote/internal/templates"
	"github.com/loganlanou/blindquote/storage"
)

type Service struct {
	config    *Config
	storage   *storage.Storage
	templates *templates.Store
	generator *quote.Generator
}

// New wires the template store and generator. db is only used when the
// templates come from SQLite and may be nil otherwise.
func New(config *Config, db *storage.Storage) (*Service, error) {
	source, err := newTemplateSource(config, db)
	if err != nil {
		return nil, err
	}

	store := templates.NewStore(source, config.Templates.Keys)

	return &Service{
		config:    config,
		storage:   db,
		templates: store,
		generator: quote.NewGenerator(pricing.NewPassThroughProvider(), store),
	}, nil
}

func newTemplateSource(config *Config, db *storage.Storage) (templates.Source, error) {
	switch config.Templates.Source {
	case "embedded":
		return templates.NewFSSource(templates.Embedded()), nil
	case "dir":
		return templates.NewDirSource(config.Templates.Dir), nil
	case "http":
		return templates.NewHTTPSource(config.Templates.BaseURL, config.Templates.LoadTimeout)
	case "sqlite":
		if db == nil {
			return nil, fmt.Errorf("sqlite template source needs a database")
		}
		return templates.NewSQLSource(db.Queries), nil
	default:
		return nil, fmt.Errorf("unknown template source %q", config.Templates.Source)
	}
}

// Start seeds the template table when needed and pre-fetches the templates
// in the background. Generation requests made before the fetch completes are
// refused rather than blocked.
func (s *Service) Start(ctx context.Context) {
	if s.config.Templates.Source == "sqlite" && s.storage != nil {
		if err := templates.Seed(ctx, s.storage.Queries, templates.Embedded(), s.config.Templates.Keys); err != nil {
			slog.Error("failed to seed quote templates", "error", err)
		}
	}

	if s.config.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY is not set; template administration routes are disabled")
	}

	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, s.config.Templates.LoadTimeout)
		defer cancel()
		// Load logs its own failure; /api/templates/reload retries.
		_ = s.templates.Load(loadCtx)
	}()
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.handleHealth)

	api := e.Group("/api")

	api.POST("/quotes/html", s.handleQuoteHTML)
	api.POST("/quotes/email", s.handleQuoteEmail)

	api.GET("/templates", s.handleTemplateStatus)

	admin := api.Group("/templates", auth.APIKeyAuth(s.config.AdminAPIKey))
	admin.POST("/reload", s.handleTemplateReload)
	admin.PUT("/:name", s.handleTemplateUpdate)
	admin.DELETE("/:name", s.handleTemplateReset)
}

func (s *Service) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"templates": s.templates.State().String(),
	})
}

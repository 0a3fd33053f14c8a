package service

import (
	"context"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/blindquote/internal/pricing"
	"github.com/loganlanou/blindquote/internal/quote"
	"github.com/loganlanou/blindquote/internal/templates"
	"github.com/loganlanou/blindquote/storage"
)

const testAdminKey = "test-admin-key"

func testConfig(source string) *Config {
	config := &Config{
		Environment: "test",
		Port:        "8080",
		AdminAPIKey: testAdminKey,
	}
	config.Templates.Source = source
	config.Templates.LoadTimeout = 5 * time.Second
	return config
}

// setupTestService creates a service reading templates from source. The
// templates are not loaded yet.
func setupTestService(t *testing.T, config *Config, source templates.Source, db *storage.Storage) *Service {
	t.Helper()

	store := templates.NewStore(source, config.Templates.Keys)

	return &Service{
		config:    config,
		storage:   db,
		templates: store,
		generator: quote.NewGenerator(pricing.NewPassThroughProvider(), store),
	}
}

// setupTestStorage creates storage backed by an in-memory database.
func setupTestStorage(t *testing.T) *storage.Storage {
	t.Helper()

	_, queries, cleanup, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	// The DB field is private; the queries are all the handlers use.
	return &storage.Storage{
		Queries: queries,
	}
}

// setupTestEcho creates an Echo instance with routes registered and the
// embedded templates loaded.
func setupTestEcho(t *testing.T) (*echo.Echo, *Service) {
	t.Helper()

	svc := setupTestService(t, testConfig("embedded"), templates.NewFSSource(templates.Embedded()), nil)
	if err := svc.templates.Load(context.Background()); err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	return newTestEcho(svc), svc
}

func newTestEcho(svc *Service) *echo.Echo {
	e := echo.New()
	svc.RegisterRoutes(e)
	return e
}

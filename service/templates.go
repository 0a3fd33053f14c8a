package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/blindquote/internal/templates"
)

type storedTemplate struct {
	Key       string    `json:"key"`
	Bytes     int       `json:"bytes"`
	UpdatedAt time.Time `json:"updated_at"`
}

type templateStatusResponse struct {
	templates.Status
	Stored []storedTemplate `json:"stored,omitempty"`
}

func (s *Service) handleTemplateStatus(c echo.Context) error {
	resp := templateStatusResponse{Status: s.templates.Status()}

	if s.writable() {
		rows, err := s.storage.Queries.ListTemplates(c.Request().Context())
		if err != nil {
			slog.Error("failed to list stored templates", "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list templates"})
		}
		for _, row := range rows {
			resp.Stored = append(resp.Stored, storedTemplate{Key: row.Key, Bytes: len(row.Body), UpdatedAt: row.UpdatedAt})
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Service) writable() bool {
	return s.config.Templates.Source == "sqlite" && s.storage != nil
}

// handleTemplateReload re-runs the load. It is the retry path after a
// failed startup fetch.
func (s *Service) handleTemplateReload(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), s.config.Templates.LoadTimeout)
	defer cancel()

	if err := s.templates.Load(ctx); err != nil {
		return c.JSON(http.StatusBadGateway, s.templates.Status())
	}
	return c.JSON(http.StatusOK, s.templates.Status())
}

// handleTemplateUpdate stores new template text under the key of :name. The
// body is the raw HTML. Only the sqlite source is writable; the change is
// picked up by the next reload.
func (s *Service) handleTemplateUpdate(c echo.Context) error {
	key, err := s.writableKey(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if strings.TrimSpace(string(body)) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Template body is required"})
	}

	if err := s.storage.Queries.UpsertTemplate(c.Request().Context(), key, string(body)); err != nil {
		slog.Error("failed to store template", "template", c.Param("name"), "key", key, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to store template"})
	}

	slog.Info("quote template updated", "template", c.Param("name"), "key", key, "bytes", len(body))
	return c.JSON(http.StatusOK, map[string]string{"template": c.Param("name"), "key": key})
}

// handleTemplateReset drops the stored text of :name and puts the embedded
// default back in its place.
func (s *Service) handleTemplateReset(c echo.Context) error {
	key, err := s.writableKey(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := s.storage.Queries.DeleteTemplate(ctx, key); err != nil {
		slog.Error("failed to delete template", "template", c.Param("name"), "key", key, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to reset template"})
	}
	if err := templates.Seed(ctx, s.storage.Queries, templates.Embedded(), s.config.Templates.Keys); err != nil {
		slog.Error("failed to reseed template", "template", c.Param("name"), "key", key, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to reset template"})
	}

	slog.Info("quote template reset to default", "template", c.Param("name"), "key", key)
	return c.JSON(http.StatusOK, map[string]string{"template": c.Param("name"), "key": key})
}

// writableKey resolves :name to its storage key. Templates that cannot be
// changed yield an *echo.HTTPError.
func (s *Service) writableKey(c echo.Context) (string, error) {
	if !s.writable() {
		return "", echo.NewHTTPError(http.StatusMethodNotAllowed, "Templates are read-only for source "+s.config.Templates.Source)
	}

	key, ok := s.templates.Key(templates.Name(c.Param("name")))
	if !ok {
		return "", echo.NewHTTPError(http.StatusNotFound, "Unknown template")
	}
	return key, nil
}

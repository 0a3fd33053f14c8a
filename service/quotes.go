package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/blindquote/internal/pricing"
	"github.com/loganlanou/blindquote/internal/quote"
)

type generateFunc func(ctx context.Context, req pricing.Request) (string, bool, error)

func (s *Service) handleQuoteHTML(c echo.Context) error {
	return s.renderQuote(c, "html", s.generator.GenerateQuoteHTML)
}

func (s *Service) handleQuoteEmail(c echo.Context) error {
	return s.renderQuote(c, "email", s.generator.GenerateGmailQuoteHTML)
}

func (s *Service) renderQuote(c echo.Context, format string, generate generateFunc) error {
	var req pricing.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	html, ok, err := generate(c.Request().Context(), req)
	if err != nil {
		var structErr *quote.StructureError
		switch {
		case errors.Is(err, pricing.ErrNoOrder), errors.Is(err, pricing.ErrInvalidRequest):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.As(err, &structErr):
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": structErr.Error()})
		default:
			slog.Error("failed to generate quote", "format", format, "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate quote"})
		}
	}
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Quote templates are not loaded yet"})
	}

	return c.HTML(http.StatusOK, html)
}

// Package quote renders a computed quote into the printable document and the
// email-safe summary.
package quote

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/loganlanou/blindquote/internal/placeholder"
	"github.com/loganlanou/blindquote/internal/pricing"
	"github.com/loganlanou/blindquote/internal/templates"
)

// TemplateReader serves loaded template text. It reports an error for a
// template that is not available yet.
type TemplateReader interface {
	Template(name templates.Name) (string, error)
}

// Generator turns pricing requests into finished HTML documents.
type Generator struct {
	provider  pricing.Provider
	templates TemplateReader
}

func NewGenerator(provider pricing.Provider, templates TemplateReader) *Generator {
	return &Generator{
		provider:  provider,
		templates: templates,
	}
}

// GenerateQuoteHTML renders the printable quote with its detailed appendix.
//
// When the primary or details template is not loaded it logs and returns
// ok=false with a nil error. Provider failures and malformed templates are
// returned as errors.
func (g *Generator) GenerateQuoteHTML(ctx context.Context, req pricing.Request) (html string, ok bool, err error) {
	primary, perr := g.templates.Template(templates.Quote)
	details, derr := g.templates.Template(templates.Details)
	if perr != nil || derr != nil {
		slog.Error("quote templates are not loaded yet", "quote_error", perr, "details_error", derr)
		return "", false, nil
	}

	genID := ulid.Make().String()
	data, err := g.provider.GetQuoteTemplateData(ctx, req)
	if err != nil {
		return "", false, fmt.Errorf("get quote template data: %w", err)
	}

	populated := data.With(map[string]any{
		"customerInfoHtml":  CustomerInfo(data),
		"itemsTableBody":    SummaryRows(data),
		"rollerBlindsTable": AppendixTable(data),
	})
	logMissing(genID, "details", details, populated)

	doc, err := AssembleDetailed(primary, details, populated)
	if err != nil {
		slog.Error("failed to assemble quote document", "generation_id", genID, "error", err)
		return "", false, err
	}

	slog.Debug("generated quote html",
		"generation_id", genID,
		"items", data.ValidItemCount(),
		"bytes", len(doc),
	)
	return doc, true, nil
}

// GenerateGmailQuoteHTML renders the card-style summary for email clients.
// It follows the same soft-failure contract as GenerateQuoteHTML.
func (g *Generator) GenerateGmailQuoteHTML(ctx context.Context, req pricing.Request) (html string, ok bool, err error) {
	tmpl, terr := g.templates.Template(templates.Gmail)
	if terr != nil {
		slog.Error("gmail quote template is not loaded yet", "error", terr)
		return "", false, nil
	}

	genID := ulid.Make().String()
	data, err := g.provider.GetQuoteTemplateData(ctx, req)
	if err != nil {
		return "", false, fmt.Errorf("get quote template data: %w", err)
	}

	populated := data.With(map[string]any{
		"customerInfoHtml": CustomerInfo(data),
		"itemsTableBody":   SummaryCards(data),
	})
	logMissing(genID, "gmail", tmpl, populated)

	doc := AssembleEmail(tmpl, populated)

	slog.Debug("generated gmail quote html",
		"generation_id", genID,
		"items", data.ValidItemCount(),
		"bytes", len(doc),
	)
	return doc, true, nil
}

// logMissing notes placeholders that will stay unfilled. They are left in
// the output on purpose so incomplete data is visible.
func logMissing(genID, template, text string, data map[string]any) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	if missing := placeholder.Missing(text, data); len(missing) > 0 {
		slog.Debug("placeholders without data", "generation_id", genID, "template", template, "keys", missing)
	}
}

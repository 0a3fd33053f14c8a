package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoOrder is returned when a request carries no order payload.
	ErrNoOrder = errors.New("order is required")
	// ErrInvalidRequest wraps payloads that are not valid JSON objects.
	ErrInvalidRequest = errors.New("invalid quote request")
)

// Request is the raw input of one quote generation: the order, the UI state
// and any extra form data, exactly as the caller sent them.
type Request struct {
	Order json.RawMessage `json:"order"`
	UI    json.RawMessage `json:"ui,omitempty"`
	Extra json.RawMessage `json:"extra,omitempty"`
}

// Provider computes the template data for a quote. Implementations own the
// pricing rules; renderers treat the result as authoritative.
type Provider interface {
	GetQuoteTemplateData(ctx context.Context, req Request) (*TemplateData, error)
}

// PassThroughProvider accepts orders whose pricing was already computed by
// the client. The order payload is decoded as TemplateData, a UI state
// payload replaces the record's uiState, and extra fields are added when the
// record does not already define them.
type PassThroughProvider struct{}

func NewPassThroughProvider() *PassThroughProvider {
	return &PassThroughProvider{}
}

func (p *PassThroughProvider) GetQuoteTemplateData(ctx context.Context, req Request) (*TemplateData, error) {
	if len(req.Order) == 0 || string(req.Order) == "null" {
		return nil, ErrNoOrder
	}

	var data TemplateData
	if err := json.Unmarshal(req.Order, &data); err != nil {
		return nil, fmt.Errorf("%w: decode order: %w", ErrInvalidRequest, err)
	}

	if len(req.UI) > 0 && string(req.UI) != "null" {
		var ui UIState
		if err := json.Unmarshal(req.UI, &ui); err != nil {
			return nil, fmt.Errorf("%w: decode ui state: %w", ErrInvalidRequest, err)
		}
		data.UIState = ui
	}

	if len(req.Extra) > 0 && string(req.Extra) != "null" {
		var extra map[string]any
		if err := json.Unmarshal(req.Extra, &extra); err != nil {
			return nil, fmt.Errorf("%w: decode extra: %w", ErrInvalidRequest, err)
		}
		for k, v := range extra {
			if _, exists := data.Fields[k]; !exists {
				data.Fields[k] = v
			}
		}
	}

	return &data, nil
}

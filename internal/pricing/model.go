// Package pricing holds the quote data model produced by the pricing
// provider and consumed by the document renderers.
package pricing

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Keys of TemplateData that carry structured data rather than flat
// placeholder values.
const (
	keyItems       = "items"
	keySummaryData = "summaryData"
	keyUIState     = "uiState"
	keyMulTimes    = "mulTimes"
)

// LineItem is one blind in the order.
type LineItem struct {
	Width      Number `json:"width"`
	Height     Number `json:"height"`
	Fabric     Text   `json:"fabric"`
	FabricType Text   `json:"fabricType"`
	Color      Text   `json:"color"`
	Location   Text   `json:"location"`
	Winder     Text   `json:"winder"`
	Dual       Text   `json:"dual"`
	Motor      Flag   `json:"motor"`
	LinePrice  Number `json:"linePrice"`
}

// Valid reports whether both dimensions are set. Items without them are not
// counted or rendered anywhere.
func (i LineItem) Valid() bool {
	return i.Width != 0 && i.Height != 0
}

// HeavyDuty reports whether the item uses the heavy-duty winder.
func (i LineItem) HeavyDuty() bool {
	return i.Winder == "HD"
}

// DualBracket reports whether the item is mounted on a dual bracket.
func (i LineItem) DualBracket() bool {
	return i.Dual == "D"
}

// SummaryData carries the aggregate prices and fees of the order. Every
// field is 0 when absent.
type SummaryData struct {
	FirstRbPrice Number `json:"firstRbPrice"`
	DisRbPrice   Number `json:"disRbPrice"`
	AcceSum      Number `json:"acceSum"`
	EAcceSum     Number `json:"eAcceSum"`
	DeliveryFee  Number `json:"deliveryFee"`
	InstallFee   Number `json:"installFee"`
	RemovalFee   Number `json:"removalFee"`
}

// FeeState holds the per-fee exclusion flags and quantities of the fees
// panel.
type FeeState struct {
	DeliveryFeeExcluded Flag   `json:"deliveryFeeExcluded"`
	InstallFeeExcluded  Flag   `json:"installFeeExcluded"`
	RemovalFeeExcluded  Flag   `json:"removalFeeExcluded"`
	DeliveryQty         Number `json:"deliveryQty"`
	RemovalQty          Number `json:"removalQty"`
}

// UIState is the slice of UI state the renderers read.
type UIState struct {
	F2 FeeState `json:"f2"`
}

// TemplateData is the flat placeholder record for one quote together with
// the structured parts the table builders need. It is built fresh for every
// generation and treated as read-only.
type TemplateData struct {
	// Fields holds every top-level key of the record, including the
	// structured ones, as decoded JSON values.
	Fields map[string]any

	Items    []LineItem
	MulTimes Number
	Summary  SummaryData
	UIState  UIState
}

// UnmarshalJSON splits the record into flat fields and the structured parts.
func (d *TemplateData) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode template data: %w", err)
	}

	out := TemplateData{Fields: make(map[string]any, len(raw))}
	for k, v := range raw {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("decode field %q: %w", k, err)
		}
		out.Fields[k] = val
	}

	if v, ok := raw[keyItems]; ok {
		// A malformed items list renders as an empty order.
		_ = json.Unmarshal(v, &out.Items)
	}
	if v, ok := raw[keySummaryData]; ok {
		_ = json.Unmarshal(v, &out.Summary)
	}
	if v, ok := raw[keyUIState]; ok {
		_ = json.Unmarshal(v, &out.UIState)
	}
	if v, ok := raw[keyMulTimes]; ok {
		_ = json.Unmarshal(v, &out.MulTimes)
	}

	*d = out
	return nil
}

// ValidItems returns the items with both dimensions set, in order.
func (d *TemplateData) ValidItems() []LineItem {
	valid := make([]LineItem, 0, len(d.Items))
	for _, item := range d.Items {
		if item.Valid() {
			valid = append(valid, item)
		}
	}
	return valid
}

// ValidItemCount is the number of items with both dimensions set.
func (d *TemplateData) ValidItemCount() int {
	n := 0
	for _, item := range d.Items {
		if item.Valid() {
			n++
		}
	}
	return n
}

// String returns the flat field key as a string, or "" when it is absent,
// null or not a scalar.
func (d *TemplateData) String(key string) string {
	switch v := d.Fields[key].(type) {
	case string:
		return v
	case float64:
		return Number(v).String()
	default:
		return ""
	}
}

// With returns a copy of the flat fields with derived merged on top. The
// receiver's own values are left untouched.
func (d *TemplateData) With(derived map[string]any) map[string]any {
	out := make(map[string]any, len(d.Fields)+len(derived))
	maps.Copy(out, d.Fields)
	maps.Copy(out, derived)
	return out
}

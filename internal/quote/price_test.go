package quote

import (
	"math"
	"testing"

	"github.com/loganlanou/blindquote/internal/pricing"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name   string
		amount any
		style  PriceStyle
		want   string
	}{
		{"plain", 25.5, PricePlain, "$25.50"},
		{"integer", 40, PricePlain, "$40.00"},
		{"pricing number", pricing.Number(12.346), PricePlain, "$12.35"},
		{"non-numeric", "n/a", PricePlain, "$0.00"},
		{"nil", nil, PricePlain, "$0.00"},
		{"negative", -5.0, PricePlain, "$-5.00"},
		{"negative zero", math.Copysign(0, -1), PricePlain, "$0.00"},
		{"negative zero number", pricing.Number(math.Copysign(0, -1)), PricePlain, "$0.00"},
		{"negative zero discounted", math.Copysign(0, -1), PriceDiscounted, `<span style="font-weight: bold; color: #d32f2f;">$0.00</span>`},
		{
			"strikethrough", 40.0, PriceStrikethrough,
			`<span style="text-decoration: line-through; color: #999999; font-size: 13.3px;">$40.00</span>`,
		},
		{
			"discounted", 270.0, PriceDiscounted,
			`<span style="font-weight: bold; color: #d32f2f;">$270.00</span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.amount, tt.style))
		})
	}
}

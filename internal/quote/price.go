package quote

import (
	"fmt"

	"github.com/loganlanou/blindquote/internal/pricing"
)

// PriceStyle selects how a formatted price is presented.
type PriceStyle int

const (
	// PricePlain renders bare text.
	PricePlain PriceStyle = iota
	// PriceStrikethrough renders an original, pre-discount price.
	PriceStrikethrough
	// PriceDiscounted renders a final, discounted price.
	PriceDiscounted
)

// Money formats amount as "$" with exactly two decimals. Anything that is not
// a number counts as 0.
func Money(amount any) string {
	return fmt.Sprintf("$%.2f", pricing.ToFloat(amount))
}

// FormatPrice formats amount like Money and wraps it in inline-styled markup
// for the strikethrough and discounted styles. The inline styles survive
// email clients that strip stylesheets.
func FormatPrice(amount any, style PriceStyle) string {
	text := Money(amount)

	switch style {
	case PriceStrikethrough:
		return `<span style="text-decoration: line-through; color: #999999; font-size: 13.3px;">` + text + `</span>`
	case PriceDiscounted:
		return `<span style="font-weight: bold; color: #d32f2f;">` + text + `</span>`
	default:
		return text
	}
}

package quote

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loganlanou/blindquote/internal/pricing"
)

type entryKind int

const (
	entryPrimary entryKind = iota
	entryAccessory
	entryFee
)

// summaryEntry is one line of the pricing summary, shared by the table and
// card renderers so both formats list the same things in the same order.
type summaryEntry struct {
	number      int
	description string
	qty         string
	price       float64
	discounted  float64
	kind        entryKind
	excluded    bool
}

// summaryEntries lists the summary lines: Roller Blinds, the accessory lines
// when their sums are positive, then Delivery, Installation and Removal.
//
// Fees are not discounted on their own. An excluded fee keeps its price and
// shows 0 as its discounted price; otherwise the discounted price repeats the
// fee.
func summaryEntries(data *pricing.TemplateData) []summaryEntry {
	s := data.Summary
	f2 := data.UIState.F2
	validCount := strconv.Itoa(data.ValidItemCount())

	entries := []summaryEntry{{
		description: "Roller Blinds",
		qty:         validCount,
		price:       s.FirstRbPrice.Float(),
		discounted:  s.DisRbPrice.Float(),
		kind:        entryPrimary,
	}}

	if s.AcceSum > 0 {
		entries = append(entries, summaryEntry{
			description: "Installation Accessories",
			qty:         "NA",
			price:       s.AcceSum.Float(),
			discounted:  s.AcceSum.Float(),
			kind:        entryAccessory,
		})
	}
	if s.EAcceSum > 0 {
		entries = append(entries, summaryEntry{
			description: "Motorised Accessories",
			qty:         "NA",
			price:       s.EAcceSum.Float(),
			discounted:  s.EAcceSum.Float(),
			kind:        entryAccessory,
		})
	}

	deliveryQty := f2.DeliveryQty
	if deliveryQty == 0 {
		deliveryQty = 1
	}

	entries = append(entries,
		feeEntry("Delivery", deliveryQty.String(), s.DeliveryFee, bool(f2.DeliveryFeeExcluded)),
		feeEntry("Installation", validCount, s.InstallFee, bool(f2.InstallFeeExcluded)),
		feeEntry("Removal", f2.RemovalQty.String(), s.RemovalFee, bool(f2.RemovalFeeExcluded)),
	)

	for i := range entries {
		entries[i].number = i + 1
	}
	return entries
}

func feeEntry(description, qty string, fee pricing.Number, excluded bool) summaryEntry {
	e := summaryEntry{
		description: description,
		qty:         qty,
		price:       fee.Float(),
		discounted:  fee.Float(),
		kind:        entryFee,
		excluded:    excluded,
	}
	if excluded {
		e.discounted = 0
	}
	return e
}

// SummaryRows renders the summary as table rows for the detailed document.
// The caller's template supplies the surrounding table and header.
func SummaryRows(data *pricing.TemplateData) string {
	var b strings.Builder
	for _, e := range summaryEntries(data) {
		priceClass := "align-right"
		if e.excluded {
			priceClass = "align-right is-excluded"
		}

		price := Money(e.price)
		discounted := Money(e.discounted)
		if e.kind == entryPrimary {
			price = `<span class="original-price">` + price + `</span>`
			discounted = `<span class="discounted-price">` + discounted + `</span>`
		}

		fmt.Fprintf(&b, `
<tr>
    <td data-label="NO">%d</td>
    <td data-label="Description" class="description">%s</td>
    <td data-label="QTY" class="align-right">%s</td>
    <td data-label="Price" class="%s">%s</td>
    <td data-label="Discounted Price" class="align-right">%s</td>
</tr>`, e.number, e.description, e.qty, priceClass, price, discounted)
	}
	return b.String()
}

// SummaryCards renders the summary as self-contained bordered blocks for
// email clients that cannot be trusted with wide tables or stylesheets.
func SummaryCards(data *pricing.TemplateData) string {
	var b strings.Builder
	for _, e := range summaryEntries(data) {
		priceStyle := PricePlain
		if e.kind == entryPrimary || e.excluded {
			priceStyle = PriceStrikethrough
		}
		discountedStyle := PricePlain
		if e.kind == entryPrimary {
			discountedStyle = PriceDiscounted
		}

		b.WriteString(card(
			fmt.Sprintf("#%d", e.number),
			e.description,
			e.qty,
			FormatPrice(e.price, priceStyle),
			FormatPrice(e.discounted, discountedStyle),
		))
	}
	return b.String()
}

func card(number, description, qty, price, discounted string) string {
	return fmt.Sprintf(`
<table role="presentation" border="0" cellpadding="0" cellspacing="0" width="100%%" style="border-collapse: collapse; margin-bottom: 15px; border: 1px solid #e0e0e0; border-radius: 5px; box-shadow: 0 1px 3px rgba(0,0,0,0.05);">
    <tbody>
        <tr>
            <td style="padding: 10px 15px; border-bottom: 1px solid #e0e0e0; background-color: #1a237e; color: white; border-radius: 4px 4px 0 0;">
                <table border="0" cellpadding="0" cellspacing="0" width="100%%" style="color: white;">
                    <tr>
                        <td width="50%%" valign="top" style="text-align: left; font-weight: bold;">%s</td>
                        <td width="50%%" valign="top" style="text-align: right; font-weight: normal;">%s</td>
                    </tr>
                </table>
            </td>
        </tr>%s%s%s
    </tbody>
</table>`, number, description,
		cardRow("QTY", qty, true),
		cardRow("Price", price, true),
		cardRow("Discounted Price", discounted, false),
	)
}

// cardRow renders a labelled value row. Only the last row of a card drops the
// bottom border.
func cardRow(label, value string, border bool) string {
	style := "padding: 10px 15px;"
	if border {
		style += " border-bottom: 1px solid #e0e0e0;"
	}
	return fmt.Sprintf(`
        <tr>
            <td style="%s">
                <table border="0" cellpadding="0" cellspacing="0" width="100%%">
                    <tr>
                        <td width="50%%" valign="top" style="text-align: left; font-weight: 600;">%s</td>
                        <td width="50%%" valign="top" style="text-align: right;">%s</td>
                    </tr>
                </table>
            </td>
        </tr>`, style, label, value)
}

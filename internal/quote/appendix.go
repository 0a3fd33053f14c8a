package quote

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/loganlanou/blindquote/internal/pricing"
)

const checkMark = "✔"

var appendixHeaders = []string{"#", "F-NAME", "F-COLOR", "Location", "HD", "Dual", "Motor", "Price"}

// Column widths in percent, one per header.
var appendixWidths = []int{5, 20, 15, 12, 9, 9, 9, 13}

var blockoutTypes = map[string]bool{"B1": true, "B2": true, "B3": true, "B4": true, "B5": true}

// FabricClass picks the row background class for an item. A light-filter
// fabric name wins over the fabric type code.
func FabricClass(item pricing.LineItem) string {
	switch {
	case strings.Contains(strings.ToLower(string(item.Fabric)), "light-filter"):
		return "bg-light-filter"
	case item.FabricType == "SN":
		return "bg-screen"
	case blockoutTypes[string(item.FabricType)]:
		return "bg-blockout"
	default:
		return ""
	}
}

// AppendixTable renders the detailed per-item table: one row per valid item,
// numbered from 1, priced at line price times the multiplier.
func AppendixTable(data *pricing.TemplateData) string {
	var rows strings.Builder
	for i, item := range data.ValidItems() {
		rows.WriteString(appendixRow(i+1, item, data.MulTimes.Float()))
	}

	var b strings.Builder
	b.WriteString("\n<table class=\"detailed-list-table\">\n<colgroup>\n")
	for _, w := range appendixWidths {
		fmt.Fprintf(&b, "<col style=\"width: %d%%;\">\n", w)
	}
	b.WriteString("</colgroup>\n<thead>\n")
	fmt.Fprintf(&b, "<tr class=\"table-title\">\n<th colspan=\"%d\">Roller Blinds - Detailed List</th>\n</tr>\n", len(appendixHeaders))
	b.WriteString("<tr>\n")
	for _, h := range appendixHeaders {
		fmt.Fprintf(&b, "<th>%s</th>", h)
	}
	b.WriteString("\n</tr>\n</thead>\n<tbody>\n")
	b.WriteString(rows.String())
	b.WriteString("</tbody>\n</table>\n")
	return b.String()
}

func appendixRow(index int, item pricing.LineItem, multiplier float64) string {
	fabricClass := FabricClass(item)
	price := item.LinePrice.Float() * multiplier

	var b strings.Builder
	b.WriteString("<tr>")
	b.WriteString(cell("#", strconv.Itoa(index), "text-center"))
	b.WriteString(cell("F-NAME", html.EscapeString(string(item.Fabric)), fabricClass))
	b.WriteString(cell("F-COLOR", html.EscapeString(string(item.Color)), fabricClass))
	b.WriteString(cell("Location", html.EscapeString(string(item.Location)), ""))
	b.WriteString(cell("HD", mark(item.HeavyDuty()), "text-center"))
	b.WriteString(cell("Dual", mark(item.DualBracket()), "text-center"))
	b.WriteString(cell("Motor", mark(bool(item.Motor)), "text-center"))
	b.WriteString(cell("Price", Money(price), "text-right"))
	b.WriteString("</tr>\n")
	return b.String()
}

// cell renders one appendix cell. Empty content adds is-empty-cell.
func cell(label, content, class string) string {
	classes := strings.Fields(class)
	if content == "" {
		classes = append(classes, "is-empty-cell")
	}
	return fmt.Sprintf(`<td data-label="%s" class="%s">%s</td>`, label, strings.Join(classes, " "), content)
}

func mark(set bool) string {
	if set {
		return checkMark
	}
	return ""
}

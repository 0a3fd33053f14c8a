package quote

import (
	"html"
	"strings"

	"github.com/loganlanou/blindquote/internal/pricing"
)

// CustomerInfo renders the customer block: name in bold, then address,
// phone and email lines when present. Address line breaks become <br>.
func CustomerInfo(data *pricing.TemplateData) string {
	var b strings.Builder
	b.WriteString("<strong>" + html.EscapeString(data.String("customerName")) + "</strong><br>")

	if addr := data.String("customerAddress"); addr != "" {
		lines := strings.Split(strings.ReplaceAll(addr, "\r\n", "\n"), "\n")
		for i, line := range lines {
			lines[i] = html.EscapeString(line)
		}
		b.WriteString(strings.Join(lines, "<br>") + "<br>")
	}
	if phone := data.String("customerPhone"); phone != "" {
		b.WriteString("Phone: " + html.EscapeString(phone) + "<br>")
	}
	if email := data.String("customerEmail"); email != "" {
		b.WriteString("Email: " + html.EscapeString(email))
	}
	return b.String()
}

package quote

import (
	"log/slog"
	"regexp"

	"github.com/loganlanou/blindquote/internal/placeholder"
)

var (
	styleBlockPattern  = regexp.MustCompile(`(?is)<style>.*</style>`)
	bodyContentPattern = regexp.MustCompile(`(?is)<body[^>]*>(.*)</body>`)
	openBodyPattern    = regexp.MustCompile(`(?i)<body[^>]*>`)
	closeBodyPattern   = regexp.MustCompile(`(?i)</body>`)
	closeHeadPattern   = regexp.MustCompile(`(?i)</head>`)
)

// Extract is the structural split of a populated details page.
type Extract struct {
	// Style is the whole <style> element, or "" when the page has none.
	Style string
	// Body is the inner content of <body>.
	Body string
}

// ExtractDetails pulls the style element and body content out of a details
// page. A page without body content is a template defect.
func ExtractDetails(page string) (Extract, error) {
	m := bodyContentPattern.FindStringSubmatch(page)
	if m == nil {
		return Extract{}, &StructureError{Template: "details", Reason: "no body content found"}
	}

	return Extract{
		Style: styleBlockPattern.FindString(page),
		Body:  m[1],
	}, nil
}

// AssembleDetailed builds the printable document: the details template is
// populated and split, its style goes into the primary head, its body
// content is appended to the primary body, the combined page is populated
// again, and the action bar and print script are injected.
func AssembleDetailed(primary, details string, data map[string]any) (string, error) {
	populatedDetails := placeholder.Substitute(details, data)

	ex, err := ExtractDetails(populatedDetails)
	if err != nil {
		return "", err
	}

	doc, ok := insertBeforeHead(primary, ex.Style)
	if !ok {
		slog.Warn("primary quote template has no </head>; details style dropped")
	}
	doc, ok = insertBeforeClosingBody(doc, ex.Body)
	if !ok {
		slog.Warn("primary quote template has no </body>; details content dropped")
	}

	doc = placeholder.Substitute(doc, data)

	doc = insertAfterOpeningBody(doc, actionBarHTML)
	doc, _ = insertBeforeClosingBody(doc, printScriptHTML)
	return doc, nil
}

// AssembleEmail builds the email document from its single template and adds
// the GST toggle and copy controls.
func AssembleEmail(tmpl string, data map[string]any) string {
	doc := placeholder.Substitute(tmpl, data)
	doc, ok := insertBeforeClosingBody(doc, gmailControlsHTML)
	if !ok {
		slog.Warn("email quote template has no </body>; controls not injected")
	}
	return doc
}

func insertBeforeHead(doc, fragment string) (string, bool) {
	loc := closeHeadPattern.FindStringIndex(doc)
	if loc == nil {
		return doc, false
	}
	return doc[:loc[0]] + fragment + doc[loc[0]:], true
}

// insertBeforeClosingBody inserts fragment before the last </body>, which is
// the one that closes the document.
func insertBeforeClosingBody(doc, fragment string) (string, bool) {
	all := closeBodyPattern.FindAllStringIndex(doc, -1)
	if len(all) == 0 {
		return doc, false
	}
	i := all[len(all)-1][0]
	return doc[:i] + fragment + doc[i:], true
}

func insertAfterOpeningBody(doc, fragment string) string {
	loc := openBodyPattern.FindStringIndex(doc)
	if loc == nil {
		return doc
	}
	return doc[:loc[1]] + fragment + doc[loc[1]:]
}

package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// descriptions are edited in a rich text field and may carry markup
var stripPolicy = bluemonday.StrictPolicy()

// PlainText removes HTML markup and collapses whitespace so the text can be drawn in a PDF
func PlainText(s string) string {
	if s == "" {
		return s
	}
	s = strings.NewReplacer("<br>", " ", "<br/>", " ", "<br />", " ", "</p>", " ").Replace(s)
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

package utils

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// unsafeFileChars are stripped so the name is valid in a Content-Disposition header and on disk
var unsafeFileChars = regexp.MustCompile(`[/\\:*?"<>|]`)

// CatalogFileName builds the download name for a catalog PDF.
// Example: "Catálogo  Verão 2026" -> "Catálogo_Verão_2026.pdf"
func CatalogFileName(title string) string {
	name := strings.TrimSpace(title)
	name = unsafeFileChars.ReplaceAllString(name, "")
	name = whitespaceRun.ReplaceAllString(name, "_")
	if name == "" {
		name = "catalogo"
	}
	return name + ".pdf"
}

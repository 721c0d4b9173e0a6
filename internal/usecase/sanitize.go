package usecase

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var freeTextPolicy = bluemonday.StrictPolicy()

// sanitizeText strips markup from caller supplied free text and returns plain text.
func sanitizeText(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(freeTextPolicy.Sanitize(raw)))
}

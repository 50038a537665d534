package utils

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()

	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// SanitizeHTML keeps the markup an admin may reasonably put in a description
// or blog post and strips scripts, handlers and the like.
func SanitizeHTML(in string) string {
	if in == "" {
		return in
	}
	return ugcPolicy.Sanitize(in)
}

// StripHTML removes every tag and decodes entities, leaving plain text for
// consumers that do not render HTML (Stripe, spreadsheets, terminals).
func StripHTML(in string) string {
	if in == "" {
		return in
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(in)))
}

// SafeFilename replaces anything outside [a-zA-Z0-9._-] with an underscore.
func SafeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

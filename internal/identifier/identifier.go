// Package identifier detects catalog ids and region tags embedded in
// filenames and scanner-supplied titles.
package identifier

import (
	"net/url"
	"regexp"
	"strings"

	"audimatch/internal/domain"
)

var (
	// Ten uppercase alphanumerics on word boundaries. A digit check is
	// applied separately: all-letter tokens are ordinary words, not ids.
	asinPattern = regexp.MustCompile(`\b[0-9A-Z]{10}\b`)

	// Two-letter region tag in square brackets, e.g. "[uk]".
	regionTagPattern = regexp.MustCompile(`\[([A-Za-z]{2})\]`)

	digitPattern = regexp.MustCompile(`[0-9]`)
)

// FindASIN returns the first embedded catalog identifier in text, or
// "" when none is present. Text is URL-decoded first so ids survive
// inside copied store links.
func FindASIN(text string) string {
	if text == "" {
		return ""
	}
	if decoded, err := url.QueryUnescape(text); err == nil {
		text = decoded
	}
	for _, match := range asinPattern.FindAllString(text, -1) {
		if digitPattern.MatchString(match) {
			return match
		}
	}
	return ""
}

// FindRegionTag returns the region code tagged in text ("[uk]"), or ""
// when absent or unknown. Callers fall back to the configured default.
func FindRegionTag(text string) string {
	m := regionTagPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	code := strings.ToLower(m[1])
	if !domain.ValidRegion(code) {
		return ""
	}
	return code
}

// Package author resolves a noisy, possibly multi-valued artist field
// into the single primary author used as a search term.
package author

import (
	"regexp"
	"strings"
)

// Contributor entries look like "Jane Doe - translator". The split is
// a plain " - " heuristic; names that legitimately contain " - " are
// knowingly misparsed, matching long-standing behavior.
var contributorPattern = regexp.MustCompile(`^(.+?) - (.+)$`)

// Initial runs at the start of a name, "J. R. R. Tolkien".
var initialsRunPattern = regexp.MustCompile(`^((?:[A-Z]\.\s+)+)`)

// Placeholder values scanners emit when they have no artist.
var badAuthorNames = []string{
	"[Unknown Artist]",
}

// Honorific tokens stripped from the query form of a name.
var honorifics = []string{
	"Dr.",
	"Dr",
	"Prof.",
	"Prof",
}

// ParseContributor splits a contributor-tagged name into its bare form
// and reports whether the tag was present. "Jane Doe - translator"
// yields ("Jane Doe", true); plain names pass through unchanged.
func ParseContributor(name string) (string, bool) {
	if m := contributorPattern.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return strings.TrimSpace(name), false
}

// ResolvePrimaryAuthor picks the single author to use as a query term
// from a raw artist field. Co-authors are comma-separated; entries
// tagged with a contributor suffix are passed over in favor of the
// first untagged name. When every entry is tagged, the first entry
// wins with its suffix stripped. Returns "" when nothing usable
// remains; that aborts the author side of the search, it is not an
// error.
func ResolvePrimaryAuthor(rawArtist, fallbackTitle string) string {
	raw := strings.TrimSpace(rawArtist)
	if raw == "" {
		// Some scanners only populate the title field.
		raw = strings.TrimSpace(fallbackTitle)
	}
	if raw == "" {
		return ""
	}

	entries := strings.Split(raw, ", ")

	chosen := ""
	for _, entry := range entries {
		bare, tagged := ParseContributor(entry)
		if !tagged {
			chosen = bare
			break
		}
	}
	if chosen == "" {
		// All entries were contributor-tagged; fall back to the first.
		chosen, _ = ParseContributor(entries[0])
	}

	// A single-author field that is itself tagged still loses its suffix.
	chosen, _ = ParseContributor(chosen)

	for _, bad := range badAuthorNames {
		if chosen == bad {
			return ""
		}
	}
	return chosen
}

// CleanSearchName normalizes the query form of an author name: leading
// honorific tokens are dropped and spaced initials are collapsed, so
// "Dr. J. R. R. Tolkien" queries as "J.R.R. Tolkien".
func CleanSearchName(name string) string {
	name = strings.TrimSpace(name)

	for changed := true; changed; {
		changed = false
		for _, h := range honorifics {
			if rest, ok := cutToken(name, h); ok {
				name = rest
				changed = true
			}
		}
	}

	if m := initialsRunPattern.FindStringSubmatch(name); m != nil {
		run := strings.ReplaceAll(m[1], " ", "")
		name = run + " " + strings.TrimSpace(name[len(m[1]):])
		name = strings.TrimSpace(name)
	}
	return name
}

// cutToken removes a leading word-boundary token, case-insensitively.
func cutToken(s, token string) (string, bool) {
	if len(s) <= len(token) || !strings.EqualFold(s[:len(token)], token) {
		return s, false
	}
	rest := s[len(token):]
	if !strings.HasPrefix(rest, " ") {
		return s, false
	}
	return strings.TrimSpace(rest), true
}

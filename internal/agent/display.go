package agent

import (
	"strings"
	"unicode"

	"audimatch/internal/constants"
	"audimatch/internal/domain"
)

// Per-language separator words used in result display names:
// `Title by Author w/ Narrator`.
type separators struct {
	by   string
	with string
}

var separatorsByLanguage = map[string]separators{
	"en": {by: "by", with: "w/"},
	"de": {by: "von", with: "mit"},
	"fr": {by: "de", with: "ac"},
	"it": {by: "di", with: "con"},
}

func resultSeparators(languageCode string) separators {
	if s, ok := separatorsByLanguage[languageCode]; ok {
		return s
	}
	return separatorsByLanguage["en"]
}

// formatBookResult renders the one-line display name the host shows in
// its match picker.
func formatBookResult(c domain.BookCandidate, languageCode string) string {
	s := resultSeparators(languageCode)

	name := truncateTitle(c.Title)
	if authors := shortenNames(c.Authors); authors != "" {
		name += " " + s.by + " " + authors
	}
	if narrators := shortenNames(c.Narrators); narrators != "" {
		name += " " + s.with + " " + narrators
	}
	return name
}

// truncateTitle keeps the picker line readable: long titles are cut to
// a fixed rune count with a two-dot ellipsis.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= constants.MaxDisplayTitleRunes {
		return title
	}
	return string(runes[:constants.TruncatedTitleRunes]) + constants.DisplayTitleEllipsis
}

func shortenNames(people []domain.Person) string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, shortenName(p.Name))
	}
	return strings.Join(names, ", ")
}

// shortenName collapses all but the surname to initials, so
// "Arthur Conan Doyle" displays as "A.C. Doyle".
func shortenName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	var b strings.Builder
	for _, part := range parts[:len(parts)-1] {
		b.WriteRune(unicode.ToUpper([]rune(part)[0]))
		b.WriteString(".")
	}
	b.WriteString(" ")
	b.WriteString(parts[len(parts)-1])
	return b.String()
}

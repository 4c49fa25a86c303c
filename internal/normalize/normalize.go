// Package normalize turns raw scanner strings into canonical comparable form.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Bracketed spans like "(Unabridged)" or "[Dramatized Adaptation]".
	bracketedPattern = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)

	// Edition noise that carries no identifying signal.
	stopwordPattern = regexp.MustCompile(`(?i)\b(official|audiobook|unabridged|abridged)\b`)

	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	whitespacePattern  = regexp.MustCompile(`\s+`)

	diacriticStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	comparisonStripper = strings.NewReplacer("-", "", ".", "", ",", "", " ", "")
)

// Normalize converts a raw title or name into canonical comparable
// form: diacritics stripped, bracketed spans and stopwords removed,
// punctuation dropped, whitespace collapsed, case folded. Pure and
// deterministic; empty input yields empty output.
func Normalize(raw string) string {
	s := StripDiacritics(raw)
	s = bracketedPattern.ReplaceAllString(s, " ")
	s = stopwordPattern.ReplaceAllString(s, " ")
	s = punctuationPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// StripDiacritics removes combining marks after NFKD decomposition, so
// "Beyoncé" compares equal to "Beyonce".
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// ReduceForComparison lowercases and removes hyphens, periods, commas
// and spaces entirely, neutralizing punctuation-style differences like
// "J.R.R." vs "J R R" inside distance scoring. This is deliberately
// not the same operation as Normalize.
func ReduceForComparison(s string) string {
	return comparisonStripper.Replace(strings.ToLower(s))
}

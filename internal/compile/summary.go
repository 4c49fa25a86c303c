package compile

import (
	"html"
	"regexp"
	"strings"
)

// Summaries arrive as a small HTML fragment. The sink wants plain
// text, so the markup subset the catalog actually emits is rewritten:
// breaks and paragraph ends become newlines, list items become
// bullets, the rest of the tags are dropped.
var (
	breakPattern     = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</ul>|</ol>`)
	listItemPattern  = regexp.MustCompile(`(?i)<li>`)
	inlineTagPattern = regexp.MustCompile(`(?i)</?(b|i|em|u|strong|p|ul|ol|li)\s*/?>`)
	blankLinePattern = regexp.MustCompile(`\n{3,}`)
)

func cleanSummary(s string) string {
	if s == "" {
		return ""
	}
	s = breakPattern.ReplaceAllString(s, "\n")
	s = listItemPattern.ReplaceAllString(s, "\n• ")
	s = inlineTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = blankLinePattern.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

// IsTechnicalTitle reports whether a job title looks IT/tech related.
func IsTechnicalTitle(title string) bool {
	text := normalizeText(title)
	for _, kw := range techKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ShouldIncludeJob applies the inclusion policy: jobs filed under a broad
// banking/finance functional area are kept only when the title passes the
// technical matcher. Everything else is always kept - the category lists
// on the source are too noisy to whitelist against.
func ShouldIncludeJob(title, functionalArea string) bool {
	area := normalizeText(functionalArea)
	broad := false
	for _, cat := range broadCategories {
		if strings.Contains(area, cat) {
			broad = true
			break
		}
	}
	if !broad {
		return true
	}
	return IsTechnicalTitle(title)
}

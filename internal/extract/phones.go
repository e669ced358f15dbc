package extract

import (
	"regexp"
	"strings"
)

var (
	//favors recall over precision: anything that looks like a dialable
	//run of digits with the usual separators
	phoneRegex      = regexp.MustCompile(`\+?\(?\d[\d\s().-]{7,28}\d`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Phones returns phone-number candidates from free text: digit runs of
// length 9-25 permitting a leading +, spaces, parentheses and dashes.
// Deduplicated in first-seen order, capped.
func Phones(text string) []string {
	if text == "" {
		return nil
	}
	normalized := whitespaceRegex.ReplaceAllString(text, " ")

	var out []string
	seen := make(map[string]bool)
	for _, m := range phoneRegex.FindAllString(normalized, -1) {
		candidate := strings.TrimSpace(m)
		digits := countDigits(candidate)
		if digits < 9 || digits > 25 {
			continue
		}
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		out = append(out, candidate)
		if len(out) >= maxContacts {
			break
		}
	}
	return out
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

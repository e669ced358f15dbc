package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	closingLabelRegex  = regexp.MustCompile(`(?i)^\s*closing\s+date\s*$`)
	dateLineRegex      = regexp.MustCompile(`^[A-Za-z]{3,}\s+\d{1,2},?\s*\d{4}$`)
	closingInlineRegex = regexp.MustCompile(`(?i)Closing\s+Date[:\s]+([A-Za-z]{3,}\s+\d{1,2},?\s*\d{4})`)
	deadlineRegex      = regexp.MustCompile(`(?i)Deadline[:\s]+([A-Za-z]{3,}\s+\d{1,2},?\s*\d{4})`)
)

// ApplyURL finds the apply link: an anchor whose text mentions "apply",
// else any href containing "apply". Returns the href as found; the
// caller absolutizes it.
func ApplyURL(doc *goquery.Document) string {
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		text := strings.ToLower(squash(s.Text()))
		if href != "" && strings.Contains(text, "apply") {
			found = href
			return false
		}
		return true
	})
	if found != "" {
		return found
	}
	doc.Find(`a[href*='apply']`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href != "" {
			found = href
			return false
		}
		return true
	})
	return found
}

// Description picks the main free-text body: a description container if
// one exists, falling back to article/main and finally the whole body.
// Anything under 200 chars is noise, not a description.
func Description(doc *goquery.Document) string {
	for _, sel := range []string{"[id*='description']", "[class*='description']", "article", "main"} {
		if t := blockText(doc.Find(sel).First()); len(t) > 200 {
			return t
		}
	}
	if t := blockText(doc.Find("body").First()); len(t) > 200 {
		return t
	}
	return ""
}

// ClosingDateText digs a raw closing-date string out of free text when
// the structured details had none: a "Closing Date" label line followed
// by a date line, then inline "Closing Date: ..." and "Deadline: ..."
// forms. Empty string when nothing matches.
func ClosingDateText(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !closingLabelRegex.MatchString(line) {
			continue
		}
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if dateLineRegex.MatchString(next) {
				return next
			}
		}
	}
	if m := closingInlineRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := deadlineRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// blockText renders a selection as newline-separated trimmed lines,
// mirroring how the source's text nodes stack vertically.
func blockText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(s.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// knownLabels are the field labels the source renders on detail pages.
// Matching is against the whole (lowercased) element text, so ordinary
// prose never collides with them.
var knownLabels = map[string]bool{
	"post date":           true,
	"closing date":        true,
	"reference":           true,
	"number of vacancies": true,
	"salary range":        true,
	"years of experience": true,
	"probation period":    true,
	"contract type":       true,
	"contract duration":   true,
	"contract extensible": true,
	"minimum education":   true,
	"location":            true,
	"company":             true,
	"functional area":     true,
	"provinces":           true,
	"countries":           true,
}

var titleCaser = cases.Title(language.English)

// Details scans a detail page for label/value pairs using a cascade of
// shapes: label element followed by a sibling value, dt/dd pairs, table
// rows, then plain "Key: Value" lines. Earlier shapes win on key clashes.
func Details(doc *goquery.Document) map[string]string {
	details := make(map[string]string)

	//shape 1: element holding exactly a known label, value in next sibling
	doc.Find("div, span, p, dt, th, td").Each(func(_ int, s *goquery.Selection) {
		label := strings.ToLower(squash(s.Text()))
		if !knownLabels[label] {
			return
		}
		val := squash(s.Next().Text())
		if val == "" || len(val) >= 200 || knownLabels[strings.ToLower(val)] {
			return
		}
		key := titleCaser.String(label)
		if _, ok := details[key]; !ok {
			details[key] = val
		}
	})

	//shape 2: dt/dd pairs
	doc.Find("dt").Each(func(_ int, s *goquery.Selection) {
		key := squash(s.Text())
		val := squash(s.NextFiltered("dd").Text())
		if key != "" && val != "" {
			if _, ok := details[key]; !ok {
				details[key] = val
			}
		}
	})

	//shape 3: two-column table rows
	doc.Find("table tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		key := squash(cells.Eq(0).Text())
		val := squash(cells.Eq(1).Text())
		if key == "" || val == "" || len(key) > 80 {
			return
		}
		if _, ok := details[key]; !ok {
			details[key] = val
		}
	})

	//shape 4: line scanning over the rendered text
	lines := strings.Split(doc.Text(), "\n")
	for i, line := range lines {
		line = squash(line)
		lower := strings.ToLower(line)

		if knownLabels[lower] {
			//value is the next non-empty, non-label line
			for j := i + 1; j < len(lines) && j <= i+2; j++ {
				val := squash(lines[j])
				if val == "" || knownLabels[strings.ToLower(val)] {
					continue
				}
				key := titleCaser.String(lower)
				if _, ok := details[key]; !ok {
					details[key] = val
				}
				break
			}
			continue
		}

		if idx := strings.Index(line, ":"); idx > 0 && len(line) >= 3 && len(line) <= 240 {
			key := squash(line[:idx])
			val := squash(line[idx+1:])
			if len(key) >= 2 && len(key) <= 80 && val != "" {
				if _, ok := details[key]; !ok {
					details[key] = val
				}
			}
		}
	}

	return details
}

// Field pulls a detail value by case-insensitive key.
func Field(details map[string]string, keys ...string) string {
	for _, want := range keys {
		for k, v := range details {
			if strings.EqualFold(strings.TrimSpace(k), want) {
				return v
			}
		}
	}
	return ""
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

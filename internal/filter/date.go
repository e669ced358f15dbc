package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kabul has no guaranteed tzdata on minimal CI images, so the offset
// is applied by hand (UTC+4:30)
var kabulZone = time.FixedZone("Asia/Kabul", 4*3600+1800)

var (
	isoDateRegex   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	monthDateRegex = regexp.MustCompile(`(?i)\b([A-Za-z]{3,9})\.?\s+(\d{1,2})(?:st|nd|rd|th)?\s*,?\s+(\d{4})\b`)
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// KabulNow returns the current time in Asia/Kabul.
func KabulNow() time.Time {
	return time.Now().In(kabulZone)
}

// KabulToday returns today's date in Asia/Kabul as YYYY-MM-DD.
// This is the canonical "today" for every freshness/expiry decision.
func KabulToday() string {
	return KabulNow().Format("2006-01-02")
}

// KabulDate converts any timestamp to its Kabul-local calendar date.
func KabulDate(t time.Time) string {
	return t.In(kabulZone).Format("2006-01-02")
}

// InKabul converts any timestamp to Kabul local time.
func InKabul(t time.Time) time.Time {
	return t.In(kabulZone)
}

// NormalizeClosingDate turns free text like "Jan 24, 2026" or
// "January 24, 2026" into ISO YYYY-MM-DD. An embedded ISO date wins
// verbatim. Returns ok=false when nothing parseable is found - the raw
// text is kept on the record either way.
func NormalizeClosingDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	//case 1: ISO substring, use as-is
	if m := isoDateRegex.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}

	//case 2: month-name form, full or 3-letter abbreviation
	if m := monthDateRegex.FindStringSubmatch(raw); m != nil {
		name := strings.ToLower(m[1])
		if len(name) > 3 {
			//reject made-up words, accept "January"
			if !validMonthName(name) {
				return "", false
			}
			name = name[:3]
		}
		month, ok := monthNumbers[name]
		if !ok {
			return "", false
		}
		day, err := strconv.Atoi(m[2])
		if err != nil || day < 1 || day > 31 {
			return "", false
		}
		year, err := strconv.Atoi(m[3])
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
	}

	return "", false
}

func validMonthName(name string) bool {
	full := []string{
		"january", "february", "march", "april", "may", "june", "july",
		"august", "september", "october", "november", "december",
	}
	for _, m := range full {
		if name == m {
			return true
		}
	}
	return false
}

// IsExpired reports whether a closing date (ISO form) is strictly before
// today. Records without a closing date never expire.
func IsExpired(closingDate, today string) bool {
	if closingDate == "" {
		return false
	}
	//ISO dates compare correctly as strings
	return closingDate < today
}

// Pure text extractors shared by the record builder.
// Every function here is stateless and side-effect free.

package extract

import (
	"regexp"
	"strings"
)

// maxContacts caps apply_emails/apply_phones per record. Extraction is
// lossy by design once the cap is hit.
const maxContacts = 10

var emailRegex = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// junkEmails are portal/support addresses that show up in page chrome,
// never in an actual vacancy.
var junkEmails = map[string]bool{
	"info@jobs.af":     true,
	"support@jobs.af":  true,
	"admin@jobs.af":    true,
	"noreply@jobs.af":  true,
	"no-reply@jobs.af": true,
	"example@example.com": true,
	"test@test.com":       true,
}

// Emails returns the apply emails found in free text, lowercased,
// deduplicated in first-seen order, junk excluded, capped.
func Emails(text string) []string {
	if text == "" {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, m := range emailRegex.FindAllString(text, -1) {
		email := strings.ToLower(strings.TrimSpace(m))
		if seen[email] || junkEmails[email] {
			continue
		}
		//domain must have a dot after the @
		at := strings.LastIndex(email, "@")
		if at < 0 || !strings.Contains(email[at+1:], ".") {
			continue
		}
		seen[email] = true
		out = append(out, email)
		if len(out) >= maxContacts {
			break
		}
	}
	return out
}

package models

import "time"

// Source tag stamped on every record from this scraper
const SourceJobsAf = "jobs.af"

// JobRecord is one job listing keyed by its detail-page URL.
// Field names are the published snapshot contract consumed by the PWA
// and the notifier - do not rename.
type JobRecord struct {
	URL            string            `json:"url"`
	Source         string            `json:"source"`
	Title          string            `json:"title,omitempty"`
	Company        string            `json:"company,omitempty"`
	Location       string            `json:"location,omitempty"`
	ClosingDate    string            `json:"closing_date,omitempty"`
	ClosingDateRaw string            `json:"closing_date_raw,omitempty"`
	ApplyURL       string            `json:"apply_url,omitempty"`
	ApplyEmails    []string          `json:"apply_emails,omitempty"`
	ApplyPhones    []string          `json:"apply_phones,omitempty"`
	ApplyMethod    string            `json:"apply_method,omitempty"`
	Description    string            `json:"description,omitempty"`
	Details        map[string]string `json:"details,omitempty"`
	ScrapedAt      time.Time         `json:"scraped_at"`
}

// Apply method values derived from apply_url/apply_emails presence
const (
	ApplyMethodLink    = "apply_link"
	ApplyMethodEmail   = "email"
	ApplyMethodBoth    = "both"
	ApplyMethodUnknown = "unknown"
)

// DeriveApplyMethod classifies how a candidate can apply for the job.
func (r *JobRecord) DeriveApplyMethod() string {
	hasURL := r.ApplyURL != ""
	hasEmails := len(r.ApplyEmails) > 0
	switch {
	case hasURL && hasEmails:
		return ApplyMethodBoth
	case hasURL:
		return ApplyMethodLink
	case hasEmails:
		return ApplyMethodEmail
	default:
		return ApplyMethodUnknown
	}
}

// Summary is the derived report written next to the snapshot.
type Summary struct {
	GeneratedAt        string      `json:"generated_at"`
	Today              string      `json:"today"`
	TotalJobs          int         `json:"total_jobs"`
	NewCount           int         `json:"new_count"`
	ExpiringTodayCount int         `json:"expiring_today_count"`
	ExpiringSoonCount  int         `json:"expiring_soon_count"`
	NewJobs            []JobRecord `json:"new_jobs"`
	ExpiringToday      []JobRecord `json:"expiring_today"`
	ExpiringSoon       []JobRecord `json:"expiring_soon"`
}

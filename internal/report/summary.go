// Package report derives the daily summary consumed by the PWA and the
// digest notifier. Always recomputed from scratch over the full
// snapshot pair, never patched incrementally.
package report

import (
	"time"

	"go-jobsaf-tracker/internal/dedup"
	"go-jobsaf-tracker/internal/filter"
	"go-jobsaf-tracker/internal/models"
)

// soonWindowDays bounds the "expiring soon" bucket (1..3 days out).
const soonWindowDays = 3

// sectionCap keeps the summary JSON small enough for the front end;
// counts always reflect the uncapped totals.
const sectionCap = 50

// Generate builds the summary for the current snapshot. previous may be
// nil (first run): new jobs then fall back to records scraped today on
// the Kabul calendar, the same day basis as every expiry decision.
func Generate(current, previous []models.JobRecord, today string, now time.Time) models.Summary {
	var newJobs []models.JobRecord
	if previous != nil {
		prevURLs := dedup.KnownURLs(previous)
		for _, r := range current {
			if !prevURLs[r.URL] {
				newJobs = append(newJobs, r)
			}
		}
	} else {
		for _, r := range current {
			if filter.KabulDate(r.ScrapedAt) == today {
				newJobs = append(newJobs, r)
			}
		}
	}

	soonCutoff := soonCutoffDate(today)
	var expiringToday, expiringSoon []models.JobRecord
	for _, r := range current {
		cd := r.ClosingDate
		if cd == "" || cd < today {
			//open-ended or already expired: neither bucket
			continue
		}
		if cd == today {
			expiringToday = append(expiringToday, r)
		} else if cd <= soonCutoff {
			expiringSoon = append(expiringSoon, r)
		}
	}

	return models.Summary{
		//generated_at shares the Kabul basis with today and the buckets
		GeneratedAt:        filter.InKabul(now).Format(time.RFC3339),
		Today:              today,
		TotalJobs:          len(current),
		NewCount:           len(newJobs),
		ExpiringTodayCount: len(expiringToday),
		ExpiringSoonCount:  len(expiringSoon),
		NewJobs:            capped(newJobs),
		ExpiringToday:      notNil(expiringToday),
		ExpiringSoon:       capped(expiringSoon),
	}
}

func soonCutoffDate(today string) string {
	t, err := time.Parse("2006-01-02", today)
	if err != nil {
		return today
	}
	return t.AddDate(0, 0, soonWindowDays).Format("2006-01-02")
}

func capped(records []models.JobRecord) []models.JobRecord {
	records = notNil(records)
	if len(records) > sectionCap {
		return records[:sectionCap]
	}
	return records
}

func notNil(records []models.JobRecord) []models.JobRecord {
	if records == nil {
		return []models.JobRecord{}
	}
	return records
}

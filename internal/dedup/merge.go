// Package dedup merges a freshly scraped batch into the prior snapshot.
// The merge is idempotent: running it twice with the same inputs yields
// the same snapshot, so the daily workflow can crash and re-run safely.
package dedup

import (
	"sort"

	"go-jobsaf-tracker/internal/filter"
	"go-jobsaf-tracker/internal/models"
)

// Merge combines the prior snapshot with the current run's records.
// URL is the sole identity: when both sides carry a URL the fresh record
// replaces the old one wholesale, while URLs only present in the prior
// snapshot survive untouched. With onlyOpen set, records whose closing
// date is strictly before today (Kabul day) are dropped; records with no
// closing date are always kept. The result is sorted by scraped_at
// descending, stable over the prior-then-fresh insertion order.
func Merge(prior, fresh []models.JobRecord, onlyOpen bool, today string) []models.JobRecord {
	byURL := make(map[string]models.JobRecord, len(prior)+len(fresh))
	var order []string

	//prior first, fresh second: last write wins per URL
	for _, r := range prior {
		if _, seen := byURL[r.URL]; !seen {
			order = append(order, r.URL)
		}
		byURL[r.URL] = r
	}
	for _, r := range fresh {
		if _, seen := byURL[r.URL]; !seen {
			order = append(order, r.URL)
		}
		byURL[r.URL] = r
	}

	merged := make([]models.JobRecord, 0, len(order))
	for _, url := range order {
		rec := byURL[url]
		if onlyOpen && filter.IsExpired(rec.ClosingDate, today) {
			continue
		}
		merged = append(merged, rec)
	}

	//most recently scraped first; ties keep insertion order
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ScrapedAt.After(merged[j].ScrapedAt)
	})

	return merged
}

// KnownURLs returns the URL set of a snapshot, for the incremental
// collector and the summary diff.
func KnownURLs(records []models.JobRecord) map[string]bool {
	known := make(map[string]bool, len(records))
	for _, r := range records {
		known[r.URL] = true
	}
	return known
}

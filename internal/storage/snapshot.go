// Package storage persists the snapshot and its projections. The JSON
// snapshot is the sole durable state between runs; writes go through a
// temp file + rename so a crashed run never clobbers the previous good
// snapshot.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-jobsaf-tracker/internal/models"
)

// csvColumns is the fixed projection consumed by spreadsheet users.
var csvColumns = []string{
	"title", "company", "location", "closing_date", "apply_url",
	"url", "source", "scraped_at", "closing_date_raw",
	"apply_emails", "apply_phones",
}

// listSeparator flattens list-valued fields into a single CSV cell.
const listSeparator = " | "

// LoadSnapshot reads a snapshot file. A missing file is an empty
// snapshot, not an error - first runs start from nothing.
func LoadSnapshot(path string) ([]models.JobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var records []models.JobRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return records, nil
}

// SaveSnapshot writes the snapshot as indented JSON, atomically.
func SaveSnapshot(path string, records []models.JobRecord) error {
	if records == nil {
		records = []models.JobRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return writeAtomic(path, data)
}

// SaveSummary writes the derived summary report as indented JSON.
func SaveSummary(path string, summary models.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	return writeAtomic(path, data)
}

// LoadSummary reads a summary file, for the notifier.
func LoadSummary(path string) (models.Summary, error) {
	var summary models.Summary
	data, err := os.ReadFile(path)
	if err != nil {
		return summary, fmt.Errorf("failed to read summary %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return summary, fmt.Errorf("failed to parse summary %s: %w", path, err)
	}
	return summary, nil
}

// SaveCSV writes the flat CSV projection of a snapshot. encoding/csv
// handles the quote escaping for commas, quotes and newlines.
func SaveCSV(path string, records []models.JobRecord) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Title,
			r.Company,
			r.Location,
			r.ClosingDate,
			r.ApplyURL,
			r.URL,
			r.Source,
			r.ScrapedAt.UTC().Format(time.RFC3339),
			r.ClosingDateRaw,
			strings.Join(r.ApplyEmails, listSeparator),
			strings.Join(r.ApplyPhones, listSeparator),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to swap %s into place: %w", path, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to swap %s into place: %w", path, err)
	}
	return nil
}

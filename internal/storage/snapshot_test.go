package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobsaf-tracker/internal/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.json")

	records := []models.JobRecord{
		{
			URL:         "https://jobs.af/jobs/data-engineer",
			Source:      models.SourceJobsAf,
			Title:       "Data Engineer",
			ClosingDate: "2026-01-24",
			ApplyEmails: []string{"hr@acme.af"},
			Details:     map[string]string{"Contract Type": "Full Time"},
			ScrapedAt:   time.Date(2026, 1, 17, 6, 0, 0, 0, time.UTC),
		},
	}

	require.NoError(t, SaveSnapshot(path, records))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, records[0].URL, loaded[0].URL)
	assert.Equal(t, records[0].ClosingDate, loaded[0].ClosingDate)
	assert.Equal(t, records[0].Details, loaded[0].Details)
	assert.True(t, records[0].ScrapedAt.Equal(loaded[0].ScrapedAt))

	//no leftover temp file after the swap
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	records, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestLoadSnapshotCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadSnapshot(path)
	assert.Error(t, err)
}

func TestSaveCSVFlattensAndEscapes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.csv")

	records := []models.JobRecord{
		{
			URL:         "https://jobs.af/jobs/officer",
			Source:      models.SourceJobsAf,
			Title:       `Officer, "Field" Ops`,
			Company:     "Acme\nNGO",
			ApplyEmails: []string{"a@acme.af", "b@acme.af"},
			ApplyPhones: []string{"+93 700 123 456"},
			ScrapedAt:   time.Date(2026, 1, 17, 6, 0, 0, 0, time.UTC),
		},
	}

	require.NoError(t, SaveCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header := strings.Join(rows[0], ",")
	assert.Equal(t, "title,company,location,closing_date,apply_url,url,source,scraped_at,closing_date_raw,apply_emails,apply_phones", header)

	row := rows[1]
	assert.Equal(t, `Officer, "Field" Ops`, row[0])
	assert.Equal(t, "Acme\nNGO", row[1])
	assert.Equal(t, "a@acme.af | b@acme.af", row[9])
	assert.Equal(t, "+93 700 123 456", row[10])
}

func TestSummaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	summary := models.Summary{
		GeneratedAt: "2026-01-17T09:30:00+04:30",
		Today:       "2026-01-17",
		TotalJobs:   3,
		NewCount:    1,
		NewJobs:     []models.JobRecord{{URL: "https://jobs.af/jobs/x", Source: models.SourceJobsAf}},
	}

	require.NoError(t, SaveSummary(path, summary))

	loaded, err := LoadSummary(path)
	require.NoError(t, err)
	assert.Equal(t, summary.Today, loaded.Today)
	assert.Equal(t, summary.NewCount, loaded.NewCount)
	require.Len(t, loaded.NewJobs, 1)
	assert.Equal(t, "https://jobs.af/jobs/x", loaded.NewJobs[0].URL)
}

func TestSaveSnapshotFailureRemovesTempFile(t *testing.T) {
	//a directory squatting on the target path makes the final rename fail
	target := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.Mkdir(target, 0755))

	err := SaveSnapshot(target, []models.JobRecord{{URL: "https://jobs.af/jobs/x"}})

	require.Error(t, err)
	_, statErr := os.Stat(target + ".tmp")
	assert.True(t, os.IsNotExist(statErr), "failed save must not leave a .tmp behind")
}

func TestSaveCSVFailureRemovesTempFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, os.Mkdir(target, 0755))

	err := SaveCSV(target, []models.JobRecord{{URL: "https://jobs.af/jobs/x"}})

	require.Error(t, err)
	_, statErr := os.Stat(target + ".tmp")
	assert.True(t, os.IsNotExist(statErr), "failed save must not leave a .tmp behind")
}

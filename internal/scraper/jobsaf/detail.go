package jobsaf

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"go-jobsaf-tracker/internal/extract"
	"go-jobsaf-tracker/internal/filter"
	"go-jobsaf-tracker/internal/models"
	"go-jobsaf-tracker/internal/scraper"
)

// Builder turns candidate detail URLs into JobRecords. One page serves
// as a moving cursor over all detail URLs, in discovery order.
type Builder struct {
	page    scraper.Page
	limiter *rate.Limiter
}

func NewBuilder(page scraper.Page, limiter *rate.Limiter) *Builder {
	return &Builder{page: page, limiter: limiter}
}

// BuildAll scrapes every URL sequentially. A URL that keeps failing is
// logged and skipped; it never aborts the batch. Records rejected by the
// inclusion policy are dropped here.
func (b *Builder) BuildAll(ctx context.Context, urls []string) []models.JobRecord {
	var records []models.JobRecord
	for i, u := range urls {
		if ctx.Err() != nil {
			log.Printf("[builder] run cancelled after %d/%d jobs", i, len(urls))
			return records
		}
		rec, err := b.Build(ctx, u)
		if err != nil {
			log.Printf("[builder] skipping %s: %v", u, truncate(err.Error(), 120))
			continue
		}
		if rec == nil {
			//rejected by policy
			continue
		}
		records = append(records, *rec)
		log.Printf("[builder] %d/%d scraped: %s | closing: %s", i+1, len(urls), orUnknown(rec.Title), orUnknown(firstNonEmpty(rec.ClosingDate, rec.ClosingDateRaw)))
	}
	return records
}

// Build navigates to one detail URL and extracts a record. Returns
// (nil, nil) when the record is excluded by the category policy.
func (b *Builder) Build(ctx context.Context, u string) (*models.JobRecord, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	if err := b.page.Navigate(ctx, u); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}

	html, err := b.page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}

	rec, err := ParseDetail(html, u)
	if err != nil {
		return nil, err
	}

	area := extract.Field(rec.Details, "Functional Area")
	if !filter.ShouldIncludeJob(rec.Title, area) {
		log.Printf("[builder] excluded by category policy: %s (%s)", orUnknown(rec.Title), area)
		return nil, nil
	}
	return rec, nil
}

// ParseDetail extracts a JobRecord from detail-page HTML. Every field
// degrades to empty rather than failing: a missing field is never fatal.
func ParseDetail(html, pageURL string) (*models.JobRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("unparseable detail page: %w", err)
	}

	title := strings.Join(strings.Fields(doc.Find("h1").First().Text()), " ")
	//a bare site title means we got the challenge page, not the job
	if strings.EqualFold(title, "jobs.af") {
		return nil, fmt.Errorf("challenge page served instead of job detail")
	}

	rec := &models.JobRecord{
		URL:       pageURL,
		Source:    models.SourceJobsAf,
		Title:     title,
		ScrapedAt: time.Now().UTC(),
	}

	rec.Details = extract.Details(doc)
	rec.Company = extract.Field(rec.Details, "Company", "Organization", "Employer")
	rec.Location = extract.Field(rec.Details, "Location", "Duty Station", "City", "Provinces")
	rec.ClosingDateRaw = extract.Field(rec.Details, "Closing Date", "Deadline", "Apply By", "Application Deadline")

	bodyText := doc.Text()
	if rec.ClosingDateRaw == "" {
		rec.ClosingDateRaw = extract.ClosingDateText(bodyText)
	}
	if rec.ClosingDateRaw != "" {
		if iso, ok := filter.NormalizeClosingDate(rec.ClosingDateRaw); ok {
			rec.ClosingDate = iso
		}
	}

	if rec.Company == "" {
		rec.Company = companyFromAboutHeading(doc)
	}
	if rec.Company == "" || rec.Location == "" {
		company, location := splitHeaderLine(doc)
		if rec.Company == "" {
			rec.Company = company
		}
		if rec.Location == "" {
			rec.Location = location
		}
	}

	if applyHref := extract.ApplyURL(doc); applyHref != "" {
		rec.ApplyURL = NormalizeURL(applyHref)
	}
	rec.Description = extract.Description(doc)

	//contacts are scanned in document order so repeated runs over the
	//same page always emit them in the same sequence
	contactSource := rec.Description + "\n" + bodyText
	rec.ApplyEmails = extract.Emails(contactSource)
	rec.ApplyPhones = extract.Phones(contactSource)
	rec.ApplyMethod = rec.DeriveApplyMethod()

	return rec, nil
}

// companyFromAboutHeading finds an "About <Company>" section heading,
// the shape the source uses when the header omits the employer.
func companyFromAboutHeading(doc *goquery.Document) string {
	var company string
	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if rest, ok := strings.CutPrefix(text, "About "); ok && rest != "" && len(rest) < 120 {
			company = rest
			return false
		}
		return true
	})
	return company
}

// splitHeaderLine reads the "Company, Location" line the listing header
// renders right under the title.
func splitHeaderLine(doc *goquery.Document) (company, location string) {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return "", ""
	}
	line := strings.Join(strings.Fields(h1.Next().Text()), " ")
	if line == "" || len(line) > 160 {
		return "", ""
	}
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

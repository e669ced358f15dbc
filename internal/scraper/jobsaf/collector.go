// Package jobsaf scrapes jobs.af: listing traversal, link collection
// and per-job record building.
package jobsaf

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/time/rate"

	"go-jobsaf-tracker/internal/scraper"
)

// Base is the site root used to absolutize relative job links.
const Base = "https://jobs.af"

// jobsPerPage is what the listing renders per page; the total page count
// is derived from the "N Available Jobs" counter at this density.
const jobsPerPage = 10

var (
	availableJobsRegex = regexp.MustCompile(`(?i)\b(\d+)\s+Available\s+Jobs\b`)
	jobPathRegex       = regexp.MustCompile(`(?i)(?:https?://jobs\.af)?(/jobs/[a-z0-9][a-z0-9\-_/]*)`)
	pageNumberRegex    = regexp.MustCompile(`^\d{1,3}$`)
)

// Collector walks listing pages and accumulates candidate job-detail
// URLs. Pages are visited strictly in order: the incremental early stop
// depends on sequential discovery.
type Collector struct {
	page    scraper.Page
	limiter *rate.Limiter
	//known holds URLs already present in the prior snapshot
	known mapset.Set[string]
	//fullScan disables the early stop and the known-URL skip
	fullScan bool
	maxPages int
}

// NewCollector builds a collector over one listing session. knownURLs
// may be empty (full rebuild / first run).
func NewCollector(page scraper.Page, knownURLs []string, maxPages int, fullScan bool, limiter *rate.Limiter) *Collector {
	known := mapset.NewSet[string]()
	for _, u := range knownURLs {
		known.Add(u)
	}
	if maxPages <= 0 {
		maxPages = 1
	}
	return &Collector{
		page:     page,
		limiter:  limiter,
		known:    known,
		fullScan: fullScan,
		maxPages: maxPages,
	}
}

// Collect visits listing pages for the base query and returns the
// candidate detail URLs in discovery order. In incremental mode only
// URLs absent from the prior snapshot are returned, and pagination
// stops at the first successfully parsed page with zero new links -
// listings are newest-first, so a fully-known page means the rest is
// known too. That ordering assumption is unverified against the source;
// full-scan mode exists as the opt-out.
func (c *Collector) Collect(ctx context.Context, baseURL string) ([]string, error) {
	baseURL = stripPageParam(baseURL)

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	if err := c.page.Navigate(ctx, pageURL(baseURL, 1)); err != nil {
		return nil, fmt.Errorf("failed to load first listing page: %w", err)
	}
	c.page.ScrollToBottom()

	totalPages := c.detectTotalPages()
	if totalPages > c.maxPages {
		totalPages = c.maxPages
	}
	log.Printf("[collector] visiting up to %d listing page(s)", totalPages)

	collected := mapset.NewSet[string]()
	var ordered []string

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		if ctx.Err() != nil {
			return ordered, ctx.Err()
		}

		if pageNum > 1 {
			if err := c.wait(ctx); err != nil {
				return ordered, err
			}
			if err := c.page.Navigate(ctx, pageURL(baseURL, pageNum)); err != nil {
				//non-fatal: skip this page, the run continues
				log.Printf("[collector] page %d failed, skipping: %v", pageNum, truncate(err.Error(), 120))
				continue
			}
			c.page.ScrollToBottom()
		}

		html, err := c.page.Content()
		if err != nil {
			log.Printf("[collector] page %d unreadable, skipping: %v", pageNum, truncate(err.Error(), 120))
			continue
		}

		links := extractJobLinks(html)
		newOnPage := 0
		for _, link := range links {
			if collected.Contains(link) {
				continue
			}
			if !c.fullScan && c.known.Contains(link) {
				continue
			}
			collected.Add(link)
			ordered = append(ordered, link)
			if !c.known.Contains(link) {
				newOnPage++
			}
		}
		log.Printf("[collector] page %d/%d: +%d new links (total: %d)", pageNum, totalPages, newOnPage, len(ordered))

		if !c.fullScan && newOnPage == 0 {
			log.Printf("[collector] page %d is fully known, stopping pagination early", pageNum)
			break
		}
	}

	return ordered, nil
}

// detectTotalPages reads the "N Available Jobs" counter from page 1's
// text; failing that, it scans the pagination UI for the largest page
// number; failing that, one page.
func (c *Collector) detectTotalPages() int {
	if text, err := c.page.BodyText(); err == nil {
		if m := availableJobsRegex.FindStringSubmatch(text); m != nil {
			if total, err := strconv.Atoi(m[1]); err == nil && total > 0 {
				return int(math.Ceil(float64(total) / jobsPerPage))
			}
		}
	}

	if html, err := c.page.Content(); err == nil {
		if max := maxPaginationNumber(html); max > 1 {
			return max
		}
	}
	return 1
}

func (c *Collector) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// extractJobLinks pulls job-detail URLs from listing HTML: anchors whose
// href has the detail path segment, plus a regex pass over the raw
// markup to catch links rendered outside anchors.
func extractJobLinks(html string) []string {
	seen := mapset.NewSet[string]()
	var links []string

	add := func(href string) {
		if !isJobDetailPath(href) {
			return
		}
		u := NormalizeURL(href)
		if seen.Contains(u) {
			return
		}
		seen.Add(u)
		links = append(links, u)
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			add(strings.TrimSpace(s.AttrOr("href", "")))
		})
	}

	for _, m := range jobPathRegex.FindAllStringSubmatch(html, -1) {
		add(m[1])
	}

	return links
}

// isJobDetailPath accepts /jobs/<slug> links and rejects listing/query
// URLs like /jobs?page=2.
func isJobDetailPath(href string) bool {
	if href == "" {
		return false
	}
	if !strings.Contains(href, "/jobs/") {
		return false
	}
	if strings.Contains(href, "/jobs?") {
		return false
	}
	//a bare trailing slash is the listing page again
	path := href[strings.Index(href, "/jobs/")+len("/jobs/"):]
	return strings.Trim(path, "/") != ""
}

// NormalizeURL absolutizes a link against the site root.
func NormalizeURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return Base + href
	}
	return Base + "/" + href
}

// pageURL appends the 1-indexed page parameter to the base query.
func pageURL(baseURL string, page int) string {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d", baseURL, sep, page)
}

// stripPageParam removes any page= the caller left on the base query so
// pagination stays under the collector's control.
func stripPageParam(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if !q.Has("page") {
		return raw
	}
	q.Del("page")
	u.RawQuery = q.Encode()
	return u.String()
}

// maxPaginationNumber scans nav/main spans for the biggest small number,
// the shape the pagination widget renders.
func maxPaginationNumber(html string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 1
	}
	max := 1
	doc.Find("main span, nav span, main a, nav a").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !pageNumberRegex.MatchString(text) {
			return
		}
		n, err := strconv.Atoi(text)
		if err != nil || n >= 200 {
			return
		}
		if n > max {
			max = n
		}
	})
	return max
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

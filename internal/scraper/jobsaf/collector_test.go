package jobsaf

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage routes navigations to canned HTML, standing in for the
// playwright session.
type fakePage struct {
	pages   map[string]fakeContent
	current fakeContent
	visits  []string
	failOn  map[string]bool
}

type fakeContent struct {
	html string
	text string
}

func (f *fakePage) Navigate(_ context.Context, url string) error {
	f.visits = append(f.visits, url)
	if f.failOn[url] {
		return fmt.Errorf("navigation timeout")
	}
	content, ok := f.pages[url]
	if !ok {
		return fmt.Errorf("no route for %s", url)
	}
	f.current = content
	return nil
}

func (f *fakePage) Content() (string, error)  { return f.current.html, nil }
func (f *fakePage) BodyText() (string, error) { return f.current.text, nil }
func (f *fakePage) ScrollToBottom() error     { return nil }

func listingHTML(slugs ...string) string {
	html := "<html><body><main>"
	for _, s := range slugs {
		html += fmt.Sprintf(`<a href="/jobs/%s">%s</a>`, s, s)
	}
	return html + "</main></body></html>"
}

const base = "https://jobs.af/jobs?category=IT"

func pageKey(n int) string {
	return fmt.Sprintf("%s&page=%d", base, n)
}

func TestCollectorEarlyStop(t *testing.T) {
	//page 1: 2 new + 3 known, page 2: all known, page 3: has new links
	//but must never be visited
	page := &fakePage{
		pages: map[string]fakeContent{
			pageKey(1): {html: listingHTML("new-1", "new-2", "known-1", "known-2", "known-3"), text: "25 Available Jobs"},
			pageKey(2): {html: listingHTML("known-4", "known-5", "known-6", "known-7", "known-8")},
			pageKey(3): {html: listingHTML("new-3", "new-4")},
		},
		failOn: map[string]bool{},
	}
	known := []string{
		"https://jobs.af/jobs/known-1", "https://jobs.af/jobs/known-2",
		"https://jobs.af/jobs/known-3", "https://jobs.af/jobs/known-4",
		"https://jobs.af/jobs/known-5", "https://jobs.af/jobs/known-6",
		"https://jobs.af/jobs/known-7", "https://jobs.af/jobs/known-8",
	}

	c := NewCollector(page, known, 80, false, nil)
	links, err := c.Collect(context.Background(), base)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://jobs.af/jobs/new-1", "https://jobs.af/jobs/new-2"}, links)
	assert.NotContains(t, page.visits, pageKey(3), "early stop must prevent the page-3 fetch")
}

func TestCollectorFullScanKeepsKnownLinks(t *testing.T) {
	page := &fakePage{
		pages: map[string]fakeContent{
			pageKey(1): {html: listingHTML("a", "b"), text: "12 Available Jobs"},
			pageKey(2): {html: listingHTML("b", "c")},
		},
		failOn: map[string]bool{},
	}

	c := NewCollector(page, []string{"https://jobs.af/jobs/a"}, 80, true, nil)
	links, err := c.Collect(context.Background(), base)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://jobs.af/jobs/a",
		"https://jobs.af/jobs/b",
		"https://jobs.af/jobs/c",
	}, links)
	assert.Contains(t, page.visits, pageKey(2))
}

func TestCollectorPageCapClampsCounter(t *testing.T) {
	page := &fakePage{
		pages: map[string]fakeContent{
			pageKey(1): {html: listingHTML("a"), text: "500 Available Jobs"},
			pageKey(2): {html: listingHTML("b")},
		},
		failOn: map[string]bool{},
	}

	c := NewCollector(page, nil, 2, true, nil)
	_, err := c.Collect(context.Background(), base)

	require.NoError(t, err)
	assert.Len(t, page.visits, 2, "50 counted pages must clamp to the cap of 2")
}

func TestCollectorFailedPageIsSkippedNotFatal(t *testing.T) {
	page := &fakePage{
		pages: map[string]fakeContent{
			pageKey(1): {html: listingHTML("a"), text: "30 Available Jobs"},
			pageKey(3): {html: listingHTML("c")},
		},
		failOn: map[string]bool{pageKey(2): true},
	}

	c := NewCollector(page, nil, 80, true, nil)
	links, err := c.Collect(context.Background(), base)

	require.NoError(t, err)
	assert.Contains(t, links, "https://jobs.af/jobs/a")
	assert.Contains(t, links, "https://jobs.af/jobs/c")
}

func TestCollectorPaginationUIFallback(t *testing.T) {
	//no jobs counter in the text: fall back to the pagination widget
	page := &fakePage{
		pages: map[string]fakeContent{
			pageKey(1): {html: `<html><body><main><a href="/jobs/a">a</a><nav><span>1</span><span>2</span></nav></main></body></html>`},
			pageKey(2): {html: listingHTML("b")},
		},
		failOn: map[string]bool{},
	}

	c := NewCollector(page, nil, 80, true, nil)
	links, err := c.Collect(context.Background(), base)

	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestCollectorStripsCallerPageParam(t *testing.T) {
	page := &fakePage{
		pages: map[string]fakeContent{
			"https://jobs.af/jobs?category=IT&page=1": {html: listingHTML("a"), text: "3 Available Jobs"},
		},
		failOn: map[string]bool{},
	}

	c := NewCollector(page, nil, 80, true, nil)
	_, err := c.Collect(context.Background(), "https://jobs.af/jobs?category=IT&page=7")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://jobs.af/jobs?category=IT&page=1"}, page.visits)
}

func TestExtractJobLinksFiltering(t *testing.T) {
	html := `<html><body>
		<a href="/jobs/software-engineer-123">Software Engineer</a>
		<a href="https://jobs.af/jobs/data-analyst">Data Analyst</a>
		<a href="/jobs?page=2">Next</a>
		<a href="/jobs/">Listing</a>
		<a href="/about">About</a>
	</body>
	<script>var next = "/jobs/hidden-in-script";</script></html>`

	links := extractJobLinks(html)

	assert.Contains(t, links, "https://jobs.af/jobs/software-engineer-123")
	assert.Contains(t, links, "https://jobs.af/jobs/data-analyst")
	assert.Contains(t, links, "https://jobs.af/jobs/hidden-in-script")
	assert.NotContains(t, links, "https://jobs.af/jobs?page=2")
	assert.NotContains(t, links, "https://jobs.af/jobs/")
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://jobs.af/jobs/x", NormalizeURL("/jobs/x"))
	assert.Equal(t, "https://jobs.af/jobs/x", NormalizeURL("jobs/x"))
	assert.Equal(t, "https://example.org/jobs/x", NormalizeURL("https://example.org/jobs/x"))
}

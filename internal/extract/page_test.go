package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyURLPrefersAnchorText(t *testing.T) {
	html := `<html><body>
		<a href="/jobs">All jobs</a>
		<a href="https://forms.example.org/123">Apply Now</a>
		<a href="https://other.example.org/apply">random</a>
	</body></html>`

	got := ApplyURL(docFromHTML(t, html))
	assert.Equal(t, "https://forms.example.org/123", got)
}

func TestApplyURLFallsBackToHref(t *testing.T) {
	html := `<html><body>
		<a href="/jobs">All jobs</a>
		<a href="https://other.example.org/apply/55">Submit here</a>
	</body></html>`

	got := ApplyURL(docFromHTML(t, html))
	assert.Equal(t, "https://other.example.org/apply/55", got)
}

func TestApplyURLAbsent(t *testing.T) {
	got := ApplyURL(docFromHTML(t, `<html><body><p>email us</p></body></html>`))
	assert.Equal(t, "", got)
}

func TestDescriptionPrefersDescriptionContainer(t *testing.T) {
	long := strings.Repeat("The role involves building data pipelines. ", 10)
	html := `<html><body>
		<main>short intro</main>
		<div class="job-description">` + long + `</div>
	</body></html>`

	got := Description(docFromHTML(t, html))
	assert.Contains(t, got, "data pipelines")
}

func TestDescriptionTooShortIsDropped(t *testing.T) {
	got := Description(docFromHTML(t, `<html><body><p>tiny</p></body></html>`))
	assert.Equal(t, "", got)
}

func TestClosingDateTextLabelThenDate(t *testing.T) {
	text := "Post Date\nJan 10, 2026\nClosing Date\nJan 24, 2026\nReference\nVA-1"
	assert.Equal(t, "Jan 24, 2026", ClosingDateText(text))
}

func TestClosingDateTextInline(t *testing.T) {
	assert.Equal(t, "Jan 24, 2026", ClosingDateText("Closing Date: Jan 24, 2026"))
	assert.Equal(t, "Feb 2, 2026", ClosingDateText("Application Deadline: Feb 2, 2026"))
}

func TestClosingDateTextAbsent(t *testing.T) {
	assert.Equal(t, "", ClosingDateText("no dates in this text"))
}

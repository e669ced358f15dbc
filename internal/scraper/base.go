// Define the page contract the pipeline drives
// Keeps the browser-automation layer swappable (and fakeable in tests)

package scraper

import "context"

// Page is the navigate/extract contract the collector and record
// builder consume. The real implementation wraps a playwright page; the
// automation layer's stealth behavior is opaque to the pipeline, which
// only needs navigation to settle and text extraction to return.
type Page interface {
	//Navigate loads a URL, retrying once with a relaxed wait condition
	Navigate(ctx context.Context, url string) error

	//Content returns the rendered HTML of the current page
	Content() (string, error)

	//BodyText returns the rendered inner text of the current page
	BodyText() (string, error)

	//ScrollToBottom nudges lazy content into the DOM
	ScrollToBottom() error
}

package browser

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// challengeMarkers are the phrases the interstitial protection page
// renders while it is still deciding about us.
var challengeMarkers = []string{
	"Verifying you are human",
	"Checking your browser",
	"security of your connection",
	"Just a moment",
}

// Session wraps one browser page as a navigate/extract cursor.
type Session struct {
	page    playwright.Page
	timeout time.Duration
	debug   *ScreenshotDebugger
}

// Navigate loads a URL and waits for the page to settle. The first
// attempt waits for DOM content plus network idle; on failure it retries
// once with the looser bare-load condition. A challenge interstitial is
// waited out within the same navigation timeout.
func (s *Session) Navigate(ctx context.Context, url string) error {
	timeoutMs := playwright.Float(float64(s.timeout.Milliseconds()))

	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   timeoutMs,
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("[browser] retrying with relaxed wait: %s", url)
		if _, err = s.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateLoad,
			Timeout:   timeoutMs,
		}); err != nil {
			s.debug.Capture(s.page, "nav-failed")
			return fmt.Errorf("navigation failed after retry: %w", err)
		}
	}

	if err := s.waitOutChallenge(ctx); err != nil {
		return err
	}

	//best effort settle; lazy listings keep fetching after load
	s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(10000),
	})
	return nil
}

// waitOutChallenge polls the body text until the challenge phrases
// disappear or the navigation timeout runs out.
func (s *Session) waitOutChallenge(ctx context.Context) error {
	deadline := time.Now().Add(s.timeout)
	for {
		text, err := s.BodyText()
		if err == nil && !containsChallenge(text) {
			return nil
		}
		if time.Now().After(deadline) {
			s.debug.Capture(s.page, "challenge-stuck")
			return fmt.Errorf("challenge page did not clear within %s", s.timeout)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		time.Sleep(3 * time.Second)
	}
}

// Content returns the rendered HTML.
func (s *Session) Content() (string, error) {
	html, err := s.page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	return html, nil
}

// BodyText returns the rendered inner text of the body.
func (s *Session) BodyText() (string, error) {
	result, err := s.page.Evaluate(`() => document.body?.innerText || ''`)
	if err != nil {
		return "", fmt.Errorf("failed to read body text: %w", err)
	}
	text, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("body text evaluation returned %T", result)
	}
	return text, nil
}

// ScrollToBottom walks the page down in steps so lazy content loads,
// then returns to the top.
func (s *Session) ScrollToBottom() error {
	for i := 0; i < 5; i++ {
		if _, err := s.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err != nil {
			return err
		}
		RandomDelay(300, 500)
	}
	_, err := s.page.Evaluate("window.scrollTo(0, 0)")
	RandomDelay(200, 400)
	return err
}

// Screenshot captures a debug artifact if a debug dir is configured.
func (s *Session) Screenshot(name string) {
	s.debug.Capture(s.page, name)
}

// Close releases the underlying page.
func (s *Session) Close() {
	s.page.Close()
}

func containsChallenge(text string) bool {
	for _, marker := range challengeMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

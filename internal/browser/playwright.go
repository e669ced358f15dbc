package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// userAgent mirrors a plain desktop Chrome; the default playwright UA
// advertises headless and trips the challenge far more often.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"

// Manager owns the playwright runtime and one browser context shared by
// all sessions of a run.
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
}

// NewManager launches the browser. Failing to launch is fatal for the
// whole run - there is nothing to scrape without it.
func NewManager(headful bool) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(!headful),
		Args:     []string{"--disable-blink-features=AutomationControlled"},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	ctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport:  &playwright.Size{Width: 1280, Height: 720},
		Locale:    playwright.String("en-US"),
		UserAgent: playwright.String(userAgent),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	return &Manager{pw: pw, browser: browser, ctx: ctx}, nil
}

// NewSession opens a fresh page. The pipeline keeps two: one cursor for
// listing pages, one for detail pages, so listing pagination state is
// never lost while a detail page is open.
func (m *Manager) NewSession(timeout time.Duration, debug *ScreenshotDebugger) (*Session, error) {
	page, err := m.ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &Session{page: page, timeout: timeout, debug: debug}, nil
}

func (m *Manager) Close() {
	if m.ctx != nil {
		m.ctx.Close()
	}
	if m.browser != nil {
		m.browser.Close()
	}
	if m.pw != nil {
		m.pw.Stop()
	}
}

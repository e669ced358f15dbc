package browser

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenshotDebugger captures full-page screenshots into a debug dir.
// A nil debugger is valid and does nothing, so call sites never have to
// check whether debugging is on.
type ScreenshotDebugger struct {
	outputDir string
}

func NewScreenshotDebugger(dir string) *ScreenshotDebugger {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ cannot create screenshot dir %s: %v", dir, err)
		return nil
	}
	return &ScreenshotDebugger{outputDir: dir}
}

func (s *ScreenshotDebugger) Capture(page playwright.Page, name string) {
	if s == nil {
		return
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.png", name, timestamp))

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return
	}
	log.Printf("📸 Screenshot saved: %s", path)
}

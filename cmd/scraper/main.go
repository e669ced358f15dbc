package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/time/rate"

	"go-jobsaf-tracker/internal/browser"
	"go-jobsaf-tracker/internal/config"
	"go-jobsaf-tracker/internal/dedup"
	"go-jobsaf-tracker/internal/filter"
	"go-jobsaf-tracker/internal/report"
	"go-jobsaf-tracker/internal/scraper/jobsaf"
	"go-jobsaf-tracker/internal/storage"
)

func main() {
	//load config, then let flags override it
	cfg := config.Load()

	baseURL := flag.String("url", cfg.BaseURL, "listing URL to scrape (required)")
	maxPages := flag.Int("max-pages", cfg.MaxPages, "hard cap on listing pages visited")
	onlyOpen := flag.Bool("only-open", false, "drop jobs whose closing date has passed")
	jsonPath := flag.String("json", cfg.JSONPath, "snapshot JSON output path")
	csvPath := flag.String("csv", cfg.CSVPath, "snapshot CSV output path")
	summaryPath := flag.String("summary", cfg.SummaryPath, "daily summary output path")
	prevPath := flag.String("prev", "", "previous snapshot to diff against (defaults to -json before this run)")
	debugDir := flag.String("debug-dir", cfg.DebugDir, "save debug screenshots here")
	headful := flag.Bool("headful", false, "run the browser with a visible window")
	fullScan := flag.Bool("full-scan", false, "disable the incremental early stop and revisit known jobs")
	timeoutMs := flag.Int("timeout-ms", cfg.TimeoutMs, "per-navigation timeout in milliseconds")
	flag.Parse()

	if *baseURL == "" {
		fmt.Fprintln(os.Stderr, "Error: -url is required (e.g. -url https://jobs.af/jobs)")
		flag.Usage()
		os.Exit(1)
	}

	today := filter.KabulToday()
	log.Printf("🚀 Starting jobs.af scrape for %s (Kabul day %s)", *baseURL, today)

	//prior snapshot drives the incremental early stop and the merge
	prior, err := storage.LoadSnapshot(*jsonPath)
	if err != nil {
		log.Fatalf("❌ Failed to load prior snapshot %s: %v", *jsonPath, err)
	}
	log.Printf("📦 Prior snapshot: %d jobs", len(prior))

	//the summary diffs against -prev when given, else against the prior
	previous := prior
	if *prevPath != "" {
		previous, err = storage.LoadSnapshot(*prevPath)
		if err != nil {
			log.Fatalf("❌ Failed to load previous snapshot %s: %v", *prevPath, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	mgr, err := browser.NewManager(*headful)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer mgr.Close()

	debug := browser.NewScreenshotDebugger(*debugDir)
	timeout := time.Duration(*timeoutMs) * time.Millisecond

	//one cursor for listings, one for details, so pagination state is
	//never clobbered mid-walk
	listingPage, err := mgr.NewSession(timeout, debug)
	if err != nil {
		log.Fatalf("❌ Failed to open listing page: %v", err)
	}
	detailPage, err := mgr.NewSession(timeout, debug)
	if err != nil {
		log.Fatalf("❌ Failed to open detail page: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	//shared politeness limiter across both cursors
	limiter := rate.NewLimiter(rate.Every(1500*time.Millisecond), 1)

	knownURLs := make([]string, 0, len(prior))
	for _, r := range prior {
		knownURLs = append(knownURLs, r.URL)
	}

	collector := jobsaf.NewCollector(listingPage, knownURLs, *maxPages, *fullScan, limiter)
	links, err := collector.Collect(ctx, *baseURL)
	if err != nil {
		log.Fatalf("❌ Link collection failed: %v", err)
	}
	log.Printf("🔍 Collected %d candidate job link(s)", len(links))

	builder := jobsaf.NewBuilder(detailPage, limiter)
	fresh := builder.BuildAll(ctx, links)
	log.Printf("📋 Scraped %d job(s) this run", len(fresh))

	merged := dedup.Merge(prior, fresh, *onlyOpen, today)

	if err := storage.SaveSnapshot(*jsonPath, merged); err != nil {
		log.Fatalf("❌ Failed to save snapshot: %v", err)
	}
	if err := storage.SaveCSV(*csvPath, merged); err != nil {
		log.Fatalf("❌ Failed to save CSV: %v", err)
	}

	summary := report.Generate(merged, previous, today, time.Now())
	if err := storage.SaveSummary(*summaryPath, summary); err != nil {
		log.Fatalf("❌ Failed to save summary: %v", err)
	}

	log.Printf("🏁 Done: %d new, %d closing today, %d closing soon, %d total in %s",
		summary.NewCount, summary.ExpiringTodayCount, summary.ExpiringSoonCount, len(merged), *jsonPath)
}

package main

import (
	"flag"
	"log"

	"go-jobsaf-tracker/internal/config"
	"go-jobsaf-tracker/internal/storage"
	"go-jobsaf-tracker/internal/telegram"
)

// Sends the daily summary to Telegram. Split from the scraper so a
// notification failure never loses a finished scrape, and so re-sending
// is just re-running this.
func main() {
	cfg := config.Load()

	summaryPath := flag.String("summary", cfg.SummaryPath, "summary JSON produced by the scraper")
	flag.Parse()

	cfg.RequireTelegram()

	summary, err := storage.LoadSummary(*summaryPath)
	if err != nil {
		log.Fatalf("❌ Failed to load summary %s: %v", *summaryPath, err)
	}

	if summary.NewCount == 0 && summary.ExpiringTodayCount == 0 && summary.ExpiringSoonCount == 0 {
		log.Println("ℹ️ Nothing new and nothing closing; skipping the digest.")
		return
	}

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatalf("❌ Failed to init Telegram Bot: %v", err)
	}

	if err := bot.SendDigest(&summary); err != nil {
		log.Fatalf("❌ Failed to send digest: %v", err)
	}
	log.Printf("✅ Digest for %s sent.", summary.Today)
}

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-jobsaf-tracker/internal/models"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func (b *Bot) escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// digestSectionLimit keeps the message under Telegram's 4096-char cap
// even on a busy day.
const digestSectionLimit = 8

// SendDigest posts the daily summary as one message: counts up top,
// then the newest jobs and the ones about to close.
func (b *Bot) SendDigest(s *models.Summary) error {
	var msg strings.Builder

	fmt.Fprintf(&msg, "📋 *jobs\\.af digest for %s*\n\n", b.escapeMarkdown(s.Today))
	fmt.Fprintf(&msg, "🆕 New: %d  ⏰ Closing today: %d  📅 Closing soon: %d  📦 Total open: %d\n",
		s.NewCount, s.ExpiringTodayCount, s.ExpiringSoonCount, s.TotalJobs)

	b.writeSection(&msg, "🆕 New jobs", s.NewJobs)
	b.writeSection(&msg, "⏰ Closing today", s.ExpiringToday)
	b.writeSection(&msg, "📅 Closing within 3 days", s.ExpiringSoon)

	m := tgbotapi.NewMessage(b.chatID, msg.String())
	m.ParseMode = "MarkdownV2"
	m.DisableWebPagePreview = true

	_, err := b.api.Send(m)
	return err
}

func (b *Bot) writeSection(msg *strings.Builder, heading string, jobs []models.JobRecord) {
	if len(jobs) == 0 {
		return
	}
	fmt.Fprintf(msg, "\n*%s*\n", b.escapeMarkdown(heading))
	for i, job := range jobs {
		if i == digestSectionLimit {
			fmt.Fprintf(msg, "…and %d more\n", len(jobs)-digestSectionLimit)
			break
		}
		title := job.Title
		if title == "" {
			title = "untitled"
		}
		line := title
		if job.Company != "" {
			line += " @ " + job.Company
		}
		fmt.Fprintf(msg, "• [%s](%s)", b.escapeMarkdown(line), job.URL)
		if job.ClosingDate != "" {
			fmt.Fprintf(msg, " closes %s", b.escapeMarkdown(job.ClosingDate))
		}
		msg.WriteString("\n")
	}
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

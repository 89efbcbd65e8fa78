package telegram

import (
	"fmt"
	"strings"

	"go-linkedin-fetcher/internal/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	return NewBotWithEndpoint(token, chatID, tgbotapi.APIEndpoint)
}

// NewBotWithEndpoint talks to a non-default Bot API server. endpoint is a
// format string taking the token and method, like tgbotapi.APIEndpoint.
func NewBotWithEndpoint(token string, chatID int64, endpoint string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

var markdownEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!",
)

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return scraper.NotAvailable
	}
	return s
}

// FormatJob renders one record as a MarkdownV2 message.
func FormatJob(rec scraper.JobRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💼 *%s*\n", escapeMarkdown(orNA(rec.Title)))
	fmt.Fprintf(&b, "🏢 %s\n", escapeMarkdown(orNA(rec.Company)))
	fmt.Fprintf(&b, "📍 %s\n", escapeMarkdown(orNA(rec.Location)))
	b.WriteString("🔖 Source: LinkedIn\n")
	return b.String()
}

func (b *Bot) SendJob(rec scraper.JobRecord) error {
	msg := tgbotapi.NewMessage(b.chatID, FormatJob(rec))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}

package telegram

import (
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// ErrInvalidWebhookURL is returned for webhook URLs without an http(s) scheme.
var ErrInvalidWebhookURL = errors.New("webhook URL must start with http:// or https://")

// Sender is the outbound side of the bot: plain messages and webhook registration.
type Sender interface {
	Send(chatID int64, text string) error
	SetWebhook(url string) error
}

// Messenger sends messages through the Telegram Bot API.
type Messenger struct {
	bot *tgbotapi.BotAPI
	log *zap.Logger
}

// NewMessenger wraps an authorized bot.
func NewMessenger(bot *tgbotapi.BotAPI, log *zap.Logger) *Messenger {
	return &Messenger{bot: bot, log: log}
}

// Send posts an HTML-formatted message to the chat. Failures are logged
// and returned; callers treat them as non-fatal.
func (m *Messenger) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := m.bot.Send(msg); err != nil {
		m.log.Error("send message failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return err
	}
	return nil
}

// SetWebhook registers url as the bot's webhook endpoint after validating
// its scheme.
func (m *Messenger) SetWebhook(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return ErrInvalidWebhookURL
	}
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return err
	}
	if _, err := m.bot.Request(wh); err != nil {
		m.log.Error("set webhook failed", zap.String("url", url), zap.Error(err))
		return err
	}
	m.log.Info("webhook set", zap.String("url", url))
	return nil
}

// DeleteWebhook removes any registered webhook so long polling can run.
func (m *Messenger) DeleteWebhook() error {
	_, err := m.bot.Request(tgbotapi.DeleteWebhookConfig{})
	return err
}

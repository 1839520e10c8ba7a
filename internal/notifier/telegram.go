package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// telegramMaxText is Telegram's limit on message length.
const telegramMaxText = 4096

type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts alerts to a single operator chat.
type TelegramNotifier struct {
	api    messageSender
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier authorizes the bot token against the Telegram API.
func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram alert bot authorized", zap.String("username", botAPI.Self.UserName))
	return newTelegramNotifier(botAPI, chatID, logger), nil
}

func newTelegramNotifier(api messageSender, chatID int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{api: api, chatID: chatID, logger: logger}
}

func (t *TelegramNotifier) Name() string { return "telegram" }

// Send ignores ctx: the bot API has no context-aware send.
func (t *TelegramNotifier) Send(_ context.Context, alert Alert) error {
	text := alert.Text()
	if r := []rune(text); len(r) > telegramMaxText {
		text = string(r[:telegramMaxText-3]) + "..."
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram alert: %w", err)
	}

	t.logger.Debug("Telegram alert sent", zap.String("message_id", alert.MessageID))
	return nil
}

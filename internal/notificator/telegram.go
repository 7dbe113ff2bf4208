package notificator

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	tgModels "github.com/go-telegram/bot/models"

	"cryptoherald/pkg/logger"
)

type TelegramNotificator struct {
	logger *logger.Logger
	bot    *bot.Bot

	chatID string
}

func NewTelegramNotificator(logger *logger.Logger, token, chatID string) (*TelegramNotificator, error) {
	provider := &TelegramNotificator{
		logger: logger,
		chatID: chatID,
	}
	opts := []bot.Option{
		bot.WithDefaultHandler(provider.handler),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %s", err)
	}
	go b.Start(context.Background())
	provider.bot = b

	return provider, nil
}

func (t *TelegramNotificator) SendNotification(message string) error {
	params := &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   message,
	}
	_, err := t.bot.SendMessage(context.Background(), params)
	if err != nil {
		t.logger.Error("Failed to send notification: ", err)
		return err
	}
	return nil
}

// handler answers /start with the chat ID, so users can copy it into their
// configuration.
func (t *TelegramNotificator) handler(ctx context.Context, b *bot.Bot, update *tgModels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	t.logger.Debug("Telegram update: ", update.Message.From.Username, " ", update.Message.Text)
	if update.Message.Text == "/start" {
		chatID := fmt.Sprint(update.Message.Chat.ID)
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "👋 Bienvenue ! Ton chat ID est " + chatID + ". Ajoute-le à ta configuration pour recevoir les notifications.",
		})
		if err != nil {
			t.logger.Error("Failed to answer /start: ", err)
		}
	}
}

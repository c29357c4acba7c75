package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mfinley/rostercoach/internal/service"
)

// TelegramBot serves the advisor commands in a single configured league chat
// and pushes scheduled reports to it.
type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, advisorService *service.AdvisorService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(advisorService),
		chatID:  chatID,
	}, nil
}

// Start long-polls for commands until ctx is cancelled. Commands arriving
// from chats other than the configured one are dropped.
func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Telegram bot online", "username", t.bot.Self.UserName, "chat_id", t.chatID)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			slog.Info("Telegram bot stopped")
			return nil
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if t.chatID != 0 && update.Message.Chat.ID != t.chatID {
				slog.Warn("Dropping command from unexpected chat",
					"chat_id", update.Message.Chat.ID,
					"command", update.Message.Command())
				continue
			}

			msg := t.handler.HandleCommand(ctx, update)
			if _, err := t.bot.Send(msg); err != nil {
				slog.Error("Error sending reply", "command", update.Message.Command(), "error", err)
			}
		}
	}
}

// SendMessage pushes a Markdown report to the league chat.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		return fmt.Errorf("no chat configured for push messages")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("sending chat message: %w", err)
	}
	return nil
}

package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mfinley/rostercoach/internal/service"
)

type Handler struct {
	advisorService *service.AdvisorService
}

func NewHandler(advisorService *service.AdvisorService) *Handler {
	return &Handler{advisorService: advisorService}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to RosterCoach! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/lineup - Check lineup for recommended swaps\n/waivers - Rank waiver targets with bids\n/trades <team key> - Propose trades with another team\n/inbox - List pending recommendations\n/unread - Count unread recommendations\n/read <id> - Mark a recommendation handled\n/whohas <player> - Check which team has a player\n/settings - Show parsed league settings"
	case "lineup":
		h.handleLineup(ctx, &msg)
	case "waivers":
		h.handleWaivers(ctx, &msg)
	case "trades":
		h.handleTrades(ctx, &msg, args)
	case "inbox":
		h.handleInbox(ctx, &msg, args)
	case "unread":
		h.handleUnread(ctx, &msg)
	case "read":
		h.handleMarkRead(ctx, &msg, args)
	case "whohas":
		h.handleWhoHas(&msg, args)
	case "settings":
		h.handleSettings(&msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleLineup(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.advisorService.LineupReport(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error running lineup check: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleWaivers(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.advisorService.WaiverReport(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error ranking waiver targets: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleTrades(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a team key. Usage: /trades <team key>"
		return
	}
	report, err := h.advisorService.TradeReport(ctx, strings.TrimSpace(args))
	if err != nil {
		msg.Text = fmt.Sprintf("Error proposing trades: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleInbox(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	report, err := h.advisorService.InboxReport(ctx, strings.TrimSpace(args))
	if err != nil {
		msg.Text = fmt.Sprintf("Error listing inbox: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleUnread(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.advisorService.UnreadSummary(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error counting unread notifications: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleMarkRead(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a notification id. Usage: /read <id>"
		return
	}
	if err := h.advisorService.MarkRead(ctx, strings.TrimSpace(args)); err != nil {
		msg.Text = fmt.Sprintf("Error marking notification read: %v", err)
	} else {
		msg.Text = "Marked as read."
	}
}

func (h *Handler) handleWhoHas(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /whohas <player name>"
		return
	}
	result, err := h.advisorService.WhoHas(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error checking who has player: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleSettings(msg *tgbotapi.MessageConfig) {
	report, err := h.advisorService.SettingsReport()
	if err != nil {
		msg.Text = fmt.Sprintf("Error loading league settings: %v", err)
	} else {
		msg.Text = report
	}
}

package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const defaultListSize = 5

// Service is what the chat commands need from the roto service.
type Service interface {
	RefreshSummary(ctx context.Context) (string, error)
	GetStandings(ctx context.Context) (string, error)
	GetRanks(ctx context.Context) (string, error)
	GetValues(ctx context.Context, teamQuery string) (string, error)
	GetFreeAgents(ctx context.Context, limit int) (string, error)
	GetSwaps(ctx context.Context, limit int) (string, error)
	WhoHas(ctx context.Context, playerName string) (string, error)
	GetHistory(ctx context.Context, limit int) (string, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

const helpText = "Available commands:\n" +
	"/standings - Projected final standings\n" +
	"/ranks - My category ranks and leads\n" +
	"/values [team] - Player values for a team\n" +
	"/freeagents [n] - Best available players\n" +
	"/swaps [n] - Best single roster moves\n" +
	"/whohas <player> - Check which team has a player\n" +
	"/history [n] - Recent report runs\n" +
	"/refresh - Rebuild the report now"

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to RotoCoach! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "standings":
		h.reply(&msg, "fetching standings", func() (string, error) { return h.service.GetStandings(ctx) })
	case "ranks":
		h.reply(&msg, "fetching ranks", func() (string, error) { return h.service.GetRanks(ctx) })
	case "values":
		h.reply(&msg, "fetching values", func() (string, error) { return h.service.GetValues(ctx, args) })
	case "freeagents":
		n := listSize(args)
		h.reply(&msg, "fetching free agents", func() (string, error) { return h.service.GetFreeAgents(ctx, n) })
	case "swaps":
		n := listSize(args)
		h.reply(&msg, "fetching swaps", func() (string, error) { return h.service.GetSwaps(ctx, n) })
	case "whohas":
		if args == "" {
			msg.Text = "Please provide a player name. Usage: /whohas <player name>"
			break
		}
		h.reply(&msg, "checking who has player", func() (string, error) { return h.service.WhoHas(ctx, args) })
	case "history":
		n := listSize(args)
		h.reply(&msg, "fetching history", func() (string, error) { return h.service.GetHistory(ctx, n) })
	case "refresh":
		h.reply(&msg, "refreshing report", func() (string, error) { return h.service.RefreshSummary(ctx) })
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) reply(msg *tgbotapi.MessageConfig, action string, fn func() (string, error)) {
	text, err := fn()
	if err != nil {
		msg.Text = fmt.Sprintf("Error %s: %v", action, err)
		msg.ParseMode = ""
		return
	}
	msg.Text = text
}

func listSize(args string) int {
	n, err := strconv.Atoi(args)
	if err != nil || n <= 0 {
		return defaultListSize
	}
	return n
}

package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rob-foulkrod/ff/internal/service"
)

type Handler struct {
	reportService *service.ReportService
}

func NewHandler(reportService *service.ReportService) *Handler {
	return &Handler{reportService: reportService}
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n" +
			"/standings - League standings\n" +
			"/divisions - Division standings\n" +
			"/playoffs - Playoff picture\n" +
			"/streaks [team] - Streaks, or one team's detail\n" +
			"/h2h - Head-to-head grid\n" +
			"/report [week] - Full weekly report\n" +
			"/preview - Next week's matchups"
	case "standings":
		h.handleStandings(&msg)
	case "divisions":
		h.handleDivisions(&msg)
	case "playoffs":
		h.handlePlayoffs(&msg)
	case "streaks":
		h.handleStreaks(&msg, args)
	case "h2h":
		h.handleHeadToHead(&msg)
	case "report":
		h.handleReport(&msg, args)
	case "preview":
		h.handlePreview(&msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleStandings(msg *tgbotapi.MessageConfig) {
	standings, err := h.reportService.GetStandings()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching standings: %v", err)
	} else {
		msg.Text = standings
	}
}

func (h *Handler) handleDivisions(msg *tgbotapi.MessageConfig) {
	divisions, err := h.reportService.GetDivisionStandings()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching division standings: %v", err)
	} else {
		msg.Text = divisions
	}
}

func (h *Handler) handlePlayoffs(msg *tgbotapi.MessageConfig) {
	picture, err := h.reportService.GetPlayoffPicture()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching playoff picture: %v", err)
	} else {
		msg.Text = picture
	}
}

func (h *Handler) handleStreaks(msg *tgbotapi.MessageConfig, args string) {
	streaks, err := h.reportService.GetStreaks(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching streaks: %v", err)
	} else {
		msg.Text = streaks
	}
}

func (h *Handler) handleHeadToHead(msg *tgbotapi.MessageConfig) {
	grid, err := h.reportService.GetHeadToHead()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching head-to-head grid: %v", err)
	} else {
		msg.Text = grid
	}
}

func (h *Handler) handleReport(msg *tgbotapi.MessageConfig, args string) {
	week := 0
	if args != "" {
		parsed, err := strconv.Atoi(args)
		if err != nil || parsed < 1 {
			msg.Text = "Usage: /report [week]"
			return
		}
		week = parsed
	}
	report, err := h.reportService.GetWeeklyReport(week)
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating report: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handlePreview(msg *tgbotapi.MessageConfig) {
	preview, err := h.reportService.GetPreview()
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating preview: %v", err)
	} else {
		msg.Text = preview
	}
}

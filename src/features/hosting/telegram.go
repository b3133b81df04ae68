package hosting

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"soundatlas/src/features/config"
	"soundatlas/src/features/jobs"
	"soundatlas/src/music"
)

// TelegramBot exposes the catalog and the background jobs over a small
// command set.
type TelegramBot struct {
	bot      *tgbotapi.BotAPI
	config   *config.Manager
	catalog  music.Catalog
	jobs     jobs.JobService
	updates  tgbotapi.UpdatesChannel
	stopChan chan struct{}
}

// NewTelegramBot creates a new Telegram bot instance.
func NewTelegramBot(cfg *config.Manager, catalog music.Catalog, jobService jobs.JobService) (*TelegramBot, error) {
	telegramConfig := cfg.Get().Telegram

	if !telegramConfig.Enabled {
		return nil, fmt.Errorf("telegram bot is disabled in configuration")
	}
	if telegramConfig.Token == "" {
		return nil, fmt.Errorf("telegram bot token is not configured")
	}

	bot, err := tgbotapi.NewBotAPI(telegramConfig.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	slog.Info("Telegram bot initialized", "username", bot.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	return &TelegramBot{
		bot:      bot,
		config:   cfg,
		catalog:  catalog,
		jobs:     jobService,
		updates:  bot.GetUpdatesChan(updateConfig),
		stopChan: make(chan struct{}),
	}, nil
}

// Start begins listening for Telegram updates.
func (t *TelegramBot) Start() {
	slog.Info("Starting Telegram bot listener")
	for {
		select {
		case update := <-t.updates:
			if update.Message != nil {
				go t.handleMessage(update)
			}
		case <-t.stopChan:
			slog.Info("Stopping Telegram bot listener")
			return
		}
	}
}

// Stop gracefully stops the bot.
func (t *TelegramBot) Stop() {
	close(t.stopChan)
}

func (t *TelegramBot) handleMessage(update tgbotapi.Update) {
	message := update.Message
	chatID := message.Chat.ID

	allowedUsers := t.config.Get().Telegram.AllowedUsers
	if !slices.Contains(allowedUsers, message.From.UserName) {
		slog.Warn("Unauthorized telegram user", "user", message.From.UserName, "chat_id", chatID)
		t.sendMessage(chatID, "Access denied.")
		return
	}

	if !message.IsCommand() {
		t.sendMessage(chatID, "Send /help for the command list.")
		return
	}

	args := strings.TrimSpace(message.CommandArguments())
	switch message.Command() {
	case "start", "help":
		t.sendMessage(chatID, helpText)
	case "status":
		t.handleStatus(chatID)
	case "jobs":
		t.handleJobs(chatID)
	case "crawl":
		t.startJob(chatID, "playlist_crawl", "Playlist crawl", map[string]any{"playlist_id": args})
	case "crawluser":
		t.startJob(chatID, "user_crawl", "User crawl", map[string]any{"user_id": args})
	case "enrich":
		t.startJob(chatID, "summary_enrich", "Summary enrichment", nil)
	case "infer":
		t.startJob(chatID, "country_infer", "Country inference", nil)
	case "link":
		t.startJob(chatID, "country_link", "Country linking", nil)
	default:
		t.sendMessage(chatID, "Unknown command. Send /help for the command list.")
	}
}

const helpText = `Commands:
/status - catalog size
/jobs - list background jobs
/crawl <playlist id> - crawl one playlist
/crawluser <user id> - crawl a user's playlists
/enrich - fetch missing biographies
/infer - classify artist countries
/link - reconcile country codes`

func (t *TelegramBot) handleStatus(chatID int64) {
	count, err := t.catalog.GetArtistsCount(context.Background())
	if err != nil {
		t.sendMessage(chatID, "Error: "+err.Error())
		return
	}
	t.sendMessage(chatID, fmt.Sprintf("%d artists in the catalog.", count))
}

func (t *TelegramBot) handleJobs(chatID int64) {
	all := t.jobs.GetJobs()
	if len(all) == 0 {
		t.sendMessage(chatID, "No jobs.")
		return
	}
	var sb strings.Builder
	for _, job := range all {
		fmt.Fprintf(&sb, "%s %s [%s] %d%% %s\n", job.ID[:8], job.Type, job.Status, job.Progress, job.Message)
	}
	t.sendMessage(chatID, sb.String())
}

func (t *TelegramBot) startJob(chatID int64, jobType, name string, metadata map[string]any) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	jobID, err := t.jobs.StartJob(jobType, name, metadata)
	if err != nil {
		t.sendMessage(chatID, "Error: "+err.Error())
		return
	}
	t.sendMessage(chatID, fmt.Sprintf("%s started: %s", name, jobID))
}

func (t *TelegramBot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		slog.Error("Failed to send telegram message", "error", err)
	}
}

package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"contest-compass/internal/models"
)

// Store is the read-only slice of the repository the bot renders from.
type Store interface {
	ListContests(ctx context.Context, platform string, past *bool) ([]models.Contest, error)
	ListContestsBetween(ctx context.Context, from, to time.Time) ([]models.Contest, error)
}

// TelegramBot answers chat commands with contest digests. It keeps no
// per-chat state and no subscription list; bookmarks live in the browser
// client only.
type TelegramBot struct {
	bot    *tgbotapi.BotAPI
	store  Store
	logger *zap.Logger
}

func NewTelegramBot(token string, store Store, logger *zap.Logger) (*TelegramBot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramBot{bot: bot, store: store, logger: logger}, nil
}

// Start runs the long-polling update loop until the updates channel closes.
func (b *TelegramBot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			b.handleMessage(update.Message)
		}
	}

	return nil
}

func (b *TelegramBot) handleMessage(message *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch message.Command() {
	case "start", "help":
		b.sendMessage(message.Chat.ID,
			"👋 Contest Compass\n/today — contests starting today\n/upcoming — upcoming contests")
	case "today":
		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		contests, err := b.store.ListContestsBetween(ctx, dayStart, dayStart.Add(24*time.Hour-time.Millisecond))
		if err != nil {
			b.logger.Error("listing today's contests failed", zap.Error(err))
			b.sendMessage(message.Chat.ID, "Something went wrong, try again later.")
			return
		}
		b.sendMessage(message.Chat.ID, renderDigest("Today's contests", contests))
	case "upcoming":
		past := false
		contests, err := b.store.ListContests(ctx, "", &past)
		if err != nil {
			b.logger.Error("listing upcoming contests failed", zap.Error(err))
			b.sendMessage(message.Chat.ID, "Something went wrong, try again later.")
			return
		}
		if len(contests) > 10 {
			contests = contests[:10]
		}
		b.sendMessage(message.Chat.ID, renderDigest("Upcoming contests", contests))
	}
}

func renderDigest(header string, contests []models.Contest) string {
	if len(contests) == 0 {
		return header + ": none found."
	}
	var sb strings.Builder
	sb.WriteString(header + ":\n")
	for _, c := range contests {
		fmt.Fprintf(&sb, "• [%s] %s — %s (%d min)\n%s\n",
			c.Platform, c.Title, c.StartTime.Format("Mon, 02 Jan 15:04 MST"), c.Duration, c.URL)
	}
	return sb.String()
}

func (b *TelegramBot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.bot.Send(msg); err != nil {
		b.logger.Error("sending telegram message failed", zap.Error(err))
	}
}

package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"moa/pkg/channels"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramConfig encapsulates the credentials required to authenticate with
// the Telegram Bot API.
type TelegramConfig struct {
	Token string `json:"token"` // secret BOT API string provided by @BotFather
}

// TelegramChannel is the Telegram front door into the pipeline: every text
// message becomes one engine run, and the synthesized answer is sent back,
// split into bubbles under the platform message limit.
type TelegramChannel struct {
	config       TelegramConfig
	bot          *tgbotapi.BotAPI
	messageLimit int
	stopCtx      context.Context
	stopCancel   context.CancelFunc
}

// NewTelegramChannel creates a Telegram channel with the given credentials
// and per-message character limit.
func NewTelegramChannel(cfg TelegramConfig, msgLimit int) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	slog.Info("Telegram bot authorized", "username", bot.Self.UserName)

	ctx, cancel := context.WithCancel(context.Background())

	return &TelegramChannel{
		config:       cfg,
		bot:          bot,
		messageLimit: msgLimit,
		stopCtx:      ctx,
		stopCancel:   cancel,
	}, nil
}

// ID returns the unique platform identifier "telegram".
func (t *TelegramChannel) ID() string {
	return "telegram"
}

// Start initiates the long-polling update loop in a background goroutine.
func (t *TelegramChannel) Start(h channels.Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.bot.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-t.stopCtx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message == nil || update.Message.Text == "" {
					continue
				}
				// One engine run per message; runs are independent, so
				// each update gets its own goroutine.
				go t.handleMessage(update.Message, h)
			}
		}
	}()

	return nil
}

// Stop aborts the long-polling loop.
func (t *TelegramChannel) Stop() error {
	t.stopCancel()
	t.bot.StopReceivingUpdates()
	return nil
}

func (t *TelegramChannel) handleMessage(msg *tgbotapi.Message, h channels.Handler) {
	session := channels.Session{
		ChannelID: "telegram",
		UserID:    strconv.FormatInt(msg.From.ID, 10),
		ChatID:    strconv.FormatInt(msg.Chat.ID, 10),
		Username:  msg.From.UserName,
	}

	slog.Info("Message received", "channel", "telegram", "user", session.Username, "chars", len(msg.Text))

	answer := h(t.stopCtx, session, msg.Text)

	for _, chunk := range splitMessage(answer, t.messageLimit) {
		reply := tgbotapi.NewMessage(msg.Chat.ID, chunk)
		reply.ReplyToMessageID = msg.MessageID
		if _, err := t.bot.Send(reply); err != nil {
			slog.Error("Failed to send telegram reply", "error", err)
			return
		}
	}
}

// splitMessage cuts text into chunks of at most limit runes, preferring
// newline boundaries so bubbles break between paragraphs. Cutting on runes
// keeps multi-byte answers (CJK translations in particular) valid UTF-8.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Courtesy pause between chunk sends.
const interChunkDelay = 700 * time.Millisecond

// Notifier delivers digest chunks to one chat, sequentially and in order.
// Any failed send is fatal for the run; already-delivered chunks stay.
type Notifier struct {
	bot       *bot.Bot
	chatID    string
	parseMode models.ParseMode
	log       *slog.Logger
}

func New(token, chatID, parseMode string, log *slog.Logger) (*Notifier, error) {
	b, err := bot.New(strings.TrimSpace(token), bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &Notifier{
		bot:       b,
		chatID:    strings.TrimSpace(chatID),
		parseMode: toParseMode(parseMode),
		log:       log,
	}, nil
}

func (n *Notifier) Send(ctx context.Context, chunks []string) error {
	for i, chunk := range chunks {
		if i > 0 {
			select {
			case <-time.After(interChunkDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if _, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    n.chatID,
			Text:      chunk,
			ParseMode: n.parseMode,
			LinkPreviewOptions: &models.LinkPreviewOptions{
				IsDisabled: bot.True(),
			},
		}); err != nil {
			return fmt.Errorf("send message %d/%d: %w", i+1, len(chunks), err)
		}

		n.log.InfoContext(ctx, "Chunk is delivered",
			"part", i+1,
			"parts", len(chunks),
			"chars", len(chunk))
	}

	return nil
}

func toParseMode(mode string) models.ParseMode {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "markdown":
		return models.ParseModeMarkdownV1
	case "markdownv2":
		return models.ParseModeMarkdown
	default:
		return models.ParseModeHTML
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cryptodigest/internal/config"
	"cryptodigest/internal/digest"
	"cryptodigest/internal/feed"
	"cryptodigest/internal/market"
	"cryptodigest/internal/render"
	"cryptodigest/internal/telegram"
)

const runTimeout = 5 * time.Minute

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	configPath := flag.String("config", "", "path to the JSON config document")
	force := flag.Bool("force", false, "send even when the DND window is active")
	suffix := flag.String("suffix", "", "extra text appended to the digest header")
	flag.Parse()

	if err := run(*configPath, *force, *suffix, log); err != nil {
		log.Error("Run failed",
			"error", err)

		os.Exit(1)
	}
}

func run(configPath string, force bool, suffix string, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	start := time.Now()

	if configPath == "" {
		return errors.New("-config flag is required")
	}

	secrets, err := config.LoadSecrets()
	if err != nil {
		return fmt.Errorf("load secrets: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	now := time.Now()

	if !force && !secrets.OverrideDND {
		inWindow, dndErr := digest.InDNDWindow(cfg.Schedule.DND, now.In(loc))
		if dndErr != nil {
			log.WarnContext(ctx, "Ignoring malformed DND window",
				"error", dndErr,
				"start", cfg.Schedule.DND.Start,
				"end", cfg.Schedule.DND.End)
		} else if inWindow {
			log.InfoContext(ctx, "DND window is active, skipping send",
				"start", cfg.Schedule.DND.Start,
				"end", cfg.Schedule.DND.End)

			return nil
		}
	}

	if suffix == "" {
		suffix = secrets.MessageSuffix
	}

	fetcher := feed.NewFetcher(log)
	marketClient := market.NewClient(log)

	sections := digest.New(cfg, loc, now, fetcher, marketClient, log).BuildSections(ctx)
	message := render.Message(sections, loc, now, suffix)

	chunks := []string{message}
	if cfg.Telegram.SplitEnabled() && len(message) > cfg.Telegram.MaxMessageLength {
		chunks = render.WithPartMarkers(render.SplitMessage(message, cfg.Telegram.MaxMessageLength))
	}

	notifier, err := telegram.New(secrets.BotToken, secrets.ChatID, cfg.Telegram.ParseMode, log)
	if err != nil {
		return fmt.Errorf("create notifier: %w", err)
	}

	if err = notifier.Send(ctx, chunks); err != nil {
		return fmt.Errorf("deliver digest: %w", err)
	}

	log.InfoContext(ctx, "Digest is delivered",
		"sections", len(sections),
		"chunks", len(chunks),
		"chars", len(message),
		"elapsedSeconds", time.Since(start).Seconds())

	return nil
}

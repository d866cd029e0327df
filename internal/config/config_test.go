package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfigJSON = `{
	"timezone": "Europe/Moscow",
	"telegram": {"max_message_length": 3000},
	"schedule": {"dnd": {"enabled": true, "start": "23:00", "end": "06:00"}},
	"sections": {
		"listings": {"enabled": true},
		"status": {"enabled": true}
	},
	"sources": {
		"listings": {"exchangeX": "https://example.com/rss"},
		"macro_calendar_url": "https://example.com/calendar.json"
	},
	"macro": {"regions": ["US", "EU"], "impact": "high"},
	"watchlist": ["BTCUSDT", "ETHUSDT"],
	"thresholds": {"funding_rate_bps": 10, "oi_change_pct": 5, "expiry_notional_min_usd": 300000000}
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfigJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Timezone != "Europe/Moscow" {
		t.Fatalf("unexpected timezone: %q", cfg.Timezone)
	}
	if cfg.Telegram.ParseMode != "HTML" {
		t.Fatalf("expected default parse mode, got %q", cfg.Telegram.ParseMode)
	}
	if cfg.Telegram.MaxMessageLength != 3000 {
		t.Fatalf("expected configured length, got %d", cfg.Telegram.MaxMessageLength)
	}
	if !cfg.Telegram.SplitEnabled() {
		t.Fatalf("expected splitting enabled by default")
	}
	if cfg.Macro.LookaheadHours != 48 {
		t.Fatalf("expected default lookahead, got %d", cfg.Macro.LookaheadHours)
	}
	if len(cfg.Sources.OptionCurrencies) == 0 {
		t.Fatalf("expected default option currencies")
	}
	if cfg.Thresholds.FundingRateBps != 10 {
		t.Fatalf("unexpected funding threshold: %v", cfg.Thresholds.FundingRateBps)
	}

	if _, err = cfg.Location(); err != nil {
		t.Fatalf("unexpected location error: %v", err)
	}
}

func TestLoadSplitDisabled(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"timezone": "UTC", "telegram": {"split_long_messages": false}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Telegram.SplitEnabled() {
		t.Fatalf("expected splitting disabled")
	}
}

func TestLoadMissingTimezone(t *testing.T) {
	if _, err := Load(writeConfig(t, `{"telegram": {}}`)); err == nil {
		t.Fatalf("expected error for missing timezone")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadSecrets(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "token")
	t.Setenv("TG_CHAT_ID", "-100123")
	t.Setenv("OVERRIDE_DND", "true")

	secrets, err := LoadSecrets()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secrets.BotToken != "token" || secrets.ChatID != "-100123" {
		t.Fatalf("unexpected secrets: %+v", secrets)
	}
	if !secrets.OverrideDND {
		t.Fatalf("expected DND override set")
	}
}

func TestLoadSecretsMissingToken(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "")
	t.Setenv("TG_CHAT_ID", "-100123")

	if _, err := LoadSecrets(); err == nil {
		t.Fatalf("expected error for missing bot token")
	}
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultParseMode           = "HTML"
	defaultMaxMessageLength    = 3500
	defaultMacroLookaheadHours = 48
)

// Secrets is the environment-provided part of the configuration. The bot
// token and chat id are required; their absence fails the run before any
// network activity.
type Secrets struct {
	BotToken      string `env:"TG_BOT_TOKEN,required,notEmpty"`
	ChatID        string `env:"TG_CHAT_ID,required,notEmpty"`
	MessageSuffix string `env:"MESSAGE_SUFFIX"`
	OverrideDND   bool   `env:"OVERRIDE_DND"`
}

func LoadSecrets() (Secrets, error) {
	var s Secrets
	if err := env.Parse(&s); err != nil {
		return Secrets{}, fmt.Errorf("parse env: %w", err)
	}

	return s, nil
}

type Telegram struct {
	ParseMode         string `json:"parse_mode"`
	MaxMessageLength  int    `json:"max_message_length"`
	SplitLongMessages *bool  `json:"split_long_messages"`
}

// SplitEnabled defaults to true when the flag is absent from the document.
func (t Telegram) SplitEnabled() bool {
	return t.SplitLongMessages == nil || *t.SplitLongMessages
}

// DND is a local-time do-not-disturb window; it may span midnight
// (e.g. start 23:00, end 06:00).
type DND struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type Schedule struct {
	DND DND `json:"dnd"`
}

type SectionToggle struct {
	Enabled bool `json:"enabled"`
}

type Sections struct {
	Macro       SectionToggle `json:"macro"`
	Listings    SectionToggle `json:"listings"`
	Derivatives SectionToggle `json:"derivatives"`
	Unlocks     SectionToggle `json:"unlocks"`
	Status      SectionToggle `json:"status"`
	Risk        SectionToggle `json:"risk"`
}

type Sources struct {
	Listings          map[string]string `json:"listings"`
	StatusPages       map[string]string `json:"status_pages"`
	MacroCalendarURL  string            `json:"macro_calendar_url"`
	BinanceFuturesURL string            `json:"binance_futures_url"`
	DeribitURL        string            `json:"deribit_url"`
	OptionCurrencies  []string          `json:"option_currencies"`
}

type Macro struct {
	Regions        []string `json:"regions"`
	Impact         string   `json:"impact"`
	LookaheadHours int      `json:"lookahead_hours"`
}

type Thresholds struct {
	FundingRateBps       float64 `json:"funding_rate_bps"`
	OIChangePct          float64 `json:"oi_change_pct"`
	ExpiryNotionalMinUSD float64 `json:"expiry_notional_min_usd"`
}

// Config is the run-shaping document. It is loaded once at startup and
// passed explicitly to every component; nothing reads it through package
// state.
type Config struct {
	Timezone   string     `json:"timezone"`
	Telegram   Telegram   `json:"telegram"`
	Schedule   Schedule   `json:"schedule"`
	Sections   Sections   `json:"sections"`
	Sources    Sources    `json:"sources"`
	Macro      Macro      `json:"macro"`
	Watchlist  []string   `json:"watchlist"`
	Thresholds Thresholds `json:"thresholds"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err = json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Timezone) == "" {
		return nil, errors.New("timezone is required")
	}

	if strings.TrimSpace(cfg.Telegram.ParseMode) == "" {
		cfg.Telegram.ParseMode = defaultParseMode
	}
	if cfg.Telegram.MaxMessageLength <= 0 {
		cfg.Telegram.MaxMessageLength = defaultMaxMessageLength
	}
	if cfg.Macro.LookaheadHours <= 0 {
		cfg.Macro.LookaheadHours = defaultMacroLookaheadHours
	}
	if len(cfg.Sources.OptionCurrencies) == 0 {
		cfg.Sources.OptionCurrencies = []string{"BTC", "ETH"}
	}

	return &cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", c.Timezone, err)
	}

	return loc, nil
}

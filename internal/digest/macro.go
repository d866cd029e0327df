package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cryptodigest/internal/config"
	"cryptodigest/internal/domain"
	"cryptodigest/internal/market"
)

const (
	impactHigh         = "high"
	impactHighOrMedium = "high_or_medium"
	impactMedium       = "medium"

	calendarSourceLabel = "calendar"
)

// Configured regions map to the calendar feed's currency/country codes.
var regionCurrencies = map[string][]string{
	"US": {"USD"},
	"EU": {"EUR"},
	"UK": {"GBP"},
	"JP": {"JPY"},
	"CN": {"CNY"},
	"CH": {"CHF"},
	"CA": {"CAD"},
	"AU": {"AUD"},
	"NZ": {"NZD"},
}

// MacroBuilder keeps calendar events inside a rolling lookahead window
// (now to now+H hours) rather than strict day buckets; within the window,
// same-day events land in Today and everything later in Tomorrow.
type MacroBuilder struct {
	client  CalendarSource
	feedURL string
	macro   config.Macro
	window  DayWindow
	clock   func() time.Time
	log     *slog.Logger
}

func NewMacroBuilder(
	client CalendarSource,
	feedURL string,
	macro config.Macro,
	window DayWindow,
	clock func() time.Time,
	log *slog.Logger,
) *MacroBuilder {
	return &MacroBuilder{
		client:  client,
		feedURL: feedURL,
		macro:   macro,
		window:  window,
		clock:   clock,
		log:     log,
	}
}

func (b *MacroBuilder) Title() string { return "Macro" }

func (b *MacroBuilder) Build(ctx context.Context) domain.Section {
	section := domain.Section{Title: b.Title(), Note: noEventsNote}

	events, err := b.client.CalendarEvents(ctx, b.feedURL)
	if err != nil {
		b.log.ErrorContext(ctx, "Calendar source is unreachable",
			"error", err,
			"feedURL", b.feedURL)

		return section
	}

	now := b.clock()
	cutoff := now.Add(time.Duration(b.macro.LookaheadHours) * time.Hour)
	allowed := allowedCurrencies(b.macro.Regions)

	var today, tomorrow []domain.FeedItem

	for _, event := range events {
		if event.Time.Before(now) || !event.Time.Before(cutoff) {
			continue
		}
		if !impactAllowed(b.macro.Impact, event.Impact) {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[event.Country]; !ok {
				continue
			}
		}

		item := domain.FeedItem{
			Title:       macroEventTitle(event),
			Source:      calendarSourceLabel,
			PublishedAt: event.Time,
		}

		if b.window.Classify(event.Time) == BucketToday {
			today = append(today, item)
		} else {
			tomorrow = append(tomorrow, item)
		}
	}

	sortByTime(today)
	sortByTime(tomorrow)
	section.Today = capItems(today)
	section.Tomorrow = capItems(tomorrow)

	return section
}

func allowedCurrencies(regions []string) map[string]struct{} {
	allowed := make(map[string]struct{})

	for _, region := range regions {
		region = strings.ToUpper(strings.TrimSpace(region))

		currencies, ok := regionCurrencies[region]
		if !ok {
			// Unknown regions pass through as literal currency codes.
			currencies = []string{region}
		}

		for _, currency := range currencies {
			allowed[currency] = struct{}{}
		}
	}

	return allowed
}

func impactAllowed(configured, impact string) bool {
	impact = strings.ToLower(strings.TrimSpace(impact))

	switch strings.ToLower(strings.TrimSpace(configured)) {
	case impactHighOrMedium:
		return impact == impactHigh || impact == impactMedium
	default:
		return impact == impactHigh
	}
}

func macroEventTitle(event market.CalendarEvent) string {
	title := event.Title
	if event.Country != "" {
		title = fmt.Sprintf("%s — %s", event.Country, event.Title)
	}

	var details []string
	if event.Actual != "" {
		details = append(details, "actual "+event.Actual)
	}
	if event.Forecast != "" {
		details = append(details, "forecast "+event.Forecast)
	}
	if event.Previous != "" {
		details = append(details, "previous "+event.Previous)
	}

	if len(details) > 0 {
		title += " (" + strings.Join(details, ", ") + ")"
	}

	return title
}

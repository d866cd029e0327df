package digest

import (
	"context"
	"slices"

	"cryptodigest/internal/domain"
	"cryptodigest/internal/feed"
	"cryptodigest/internal/market"
)

// Each bucket keeps at most this many entries.
const sectionItemCap = 5

const (
	noEventsNote       = "No events matched the configured filters."
	macroDisabledNote  = "Macro calendar feed is not configured."
	unlocksNote        = "Token unlock sources are not wired up yet."
	riskNote           = "Incident and de-peg sources are not wired up yet."
	derivativesOffNote = "Derivatives flags are disabled."
)

// Builder produces one topical section of the digest. Implementations never
// fail: a broken source degrades to an empty section with its note.
type Builder interface {
	Title() string
	Build(ctx context.Context) domain.Section
}

// ItemSource is the feed-fetching capability builders depend on.
type ItemSource interface {
	Fetch(ctx context.Context, source, feedURL string, limit int) feed.FetchResult
}

type CalendarSource interface {
	CalendarEvents(ctx context.Context, feedURL string) ([]market.CalendarEvent, error)
}

type DerivativesSource interface {
	LatestFundingRate(ctx context.Context, baseURL, symbol string) (*market.FundingRate, error)
	OpenInterestChange24h(ctx context.Context, baseURL, symbol string) (*market.OpenInterestChange, error)
	OptionExpiryNotionals(ctx context.Context, baseURL, currency string) ([]market.ExpiryNotional, error)
}

// MarketData is what the market.Client provides to the digest.
type MarketData interface {
	CalendarSource
	DerivativesSource
}

// bucketItems splits items into local-day buckets, sorted ascending so the
// soonest event leads, and caps each bucket.
func bucketItems(window DayWindow, items []domain.FeedItem) (today, tomorrow []domain.FeedItem) {
	for _, item := range items {
		switch window.Classify(item.PublishedAt) {
		case BucketToday:
			today = append(today, item)
		case BucketTomorrow:
			tomorrow = append(tomorrow, item)
		}
	}

	sortByTime(today)
	sortByTime(tomorrow)

	return capItems(today), capItems(tomorrow)
}

func sortByTime(items []domain.FeedItem) {
	slices.SortStableFunc(items, func(a, b domain.FeedItem) int {
		return a.PublishedAt.Compare(b.PublishedAt)
	})
}

func capItems(items []domain.FeedItem) []domain.FeedItem {
	if len(items) > sectionItemCap {
		return items[:sectionItemCap]
	}

	return items
}

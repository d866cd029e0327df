package digest

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"cryptodigest/internal/domain"
)

const listingsFeedItemLimit = 40

// Listing announcements come in several phrasings and languages; matching is
// case-insensitive substring.
var listingKeywords = []string{
	"will list",
	"lists",
	"listing",
	"launches",
	"new listing",
	"listare",
	"листинг",
	"список",
}

type ListingsBuilder struct {
	fetcher ItemSource
	sources map[string]string
	enabled bool
	window  DayWindow
	log     *slog.Logger
}

func NewListingsBuilder(
	fetcher ItemSource,
	sources map[string]string,
	enabled bool,
	window DayWindow,
	log *slog.Logger,
) *ListingsBuilder {
	return &ListingsBuilder{
		fetcher: fetcher,
		sources: sources,
		enabled: enabled,
		window:  window,
		log:     log,
	}
}

func (b *ListingsBuilder) Title() string { return "Listings" }

func (b *ListingsBuilder) Build(ctx context.Context) domain.Section {
	section := domain.Section{Title: b.Title(), Note: noEventsNote}
	if !b.enabled {
		return section
	}

	var matched []domain.FeedItem

	for _, name := range slices.Sorted(maps.Keys(b.sources)) {
		result := b.fetcher.Fetch(ctx, name, b.sources[name], listingsFeedItemLimit)
		if result.Err != nil {
			b.log.ErrorContext(ctx, "Listings source is unreachable",
				"error", result.Err,
				"source", name)

			continue
		}

		for _, item := range result.Items {
			if matchesListingKeyword(item.Title) {
				matched = append(matched, item)
			}
		}
	}

	section.Today, section.Tomorrow = bucketItems(b.window, matched)

	return section
}

func matchesListingKeyword(title string) bool {
	lower := strings.ToLower(title)

	for _, keyword := range listingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

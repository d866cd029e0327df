package digest

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"cryptodigest/internal/domain"
)

const statusFeedItemLimit = 30

// StatusBuilder aggregates status-page feeds. Unlike listings there is no
// keyword filter: every incident or maintenance entry counts.
type StatusBuilder struct {
	fetcher ItemSource
	sources map[string]string
	enabled bool
	window  DayWindow
	log     *slog.Logger
}

func NewStatusBuilder(
	fetcher ItemSource,
	sources map[string]string,
	enabled bool,
	window DayWindow,
	log *slog.Logger,
) *StatusBuilder {
	return &StatusBuilder{
		fetcher: fetcher,
		sources: sources,
		enabled: enabled,
		window:  window,
		log:     log,
	}
}

func (b *StatusBuilder) Title() string { return "Networks/Status" }

func (b *StatusBuilder) Build(ctx context.Context) domain.Section {
	section := domain.Section{Title: b.Title(), Note: noEventsNote}
	if !b.enabled {
		return section
	}

	var items []domain.FeedItem

	for _, name := range slices.Sorted(maps.Keys(b.sources)) {
		result := b.fetcher.Fetch(ctx, name, b.sources[name], statusFeedItemLimit)
		if result.Err != nil {
			b.log.ErrorContext(ctx, "Status source is unreachable",
				"error", result.Err,
				"source", name)

			continue
		}

		items = append(items, result.Items...)
	}

	section.Today, section.Tomorrow = bucketItems(b.window, items)

	return section
}

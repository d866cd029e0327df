package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cryptodigest/internal/domain"

	"github.com/mmcdole/gofeed"
)

const (
	feedClientTimeout = 20 * time.Second
	defaultItemLimit  = 40
)

// FetchResult separates "source unreachable" (Err set) from "source fine but
// no events" (nil Err, empty Items). Builders treat both as zero items; the
// distinction only feeds diagnostics.
type FetchResult struct {
	Items []domain.FeedItem
	Err   error
}

type Fetcher struct {
	parser *gofeed.Parser
	clock  func() time.Time
	log    *slog.Logger
}

func NewFetcher(log *slog.Logger) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: feedClientTimeout}

	return &Fetcher{
		parser: parser,
		clock:  time.Now,
		log:    log,
	}
}

// Fetch retrieves up to limit normalized items from an RSS/Atom feed. It
// never propagates an error to the caller; failures land in FetchResult.Err.
func (f *Fetcher) Fetch(
	ctx context.Context,
	source string,
	feedURL string,
	limit int,
) FetchResult {
	if limit <= 0 {
		limit = defaultItemLimit
	}

	parsed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		f.log.WarnContext(ctx, "Failed to fetch feed",
			"error", err,
			"source", source,
			"feedURL", feedURL)

		return FetchResult{Err: fmt.Errorf("parse feed (URL = %s): %w", feedURL, err)}
	}

	items := make([]domain.FeedItem, 0, min(limit, len(parsed.Items)))
	for _, item := range parsed.Items {
		if len(items) == limit {
			break
		}

		items = append(items, f.normalizeItem(ctx, source, item))
	}

	return FetchResult{Items: items}
}

func (f *Fetcher) normalizeItem(
	ctx context.Context,
	source string,
	item *gofeed.Item,
) domain.FeedItem {
	summary := summaryText(item.Description)
	if summary == "" {
		summary = summaryText(item.Content)
	}

	link := strings.TrimSpace(item.Link)
	if link == "" {
		link = firstURL(summary)
	}

	return domain.FeedItem{
		Title:       strings.TrimSpace(item.Title),
		Link:        link,
		Summary:     summary,
		Source:      source,
		PublishedAt: f.itemTime(ctx, source, item),
	}
}

// itemTime tries the published and updated fields in order; when neither
// parses, the fetch time keeps the item bucketable.
func (f *Fetcher) itemTime(
	ctx context.Context,
	source string,
	item *gofeed.Item,
) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return *item.PublishedParsed
	case item.UpdatedParsed != nil:
		return *item.UpdatedParsed
	}

	f.log.WarnContext(ctx, "Feed item has no parseable time",
		"source", source,
		"itemTitle", strings.TrimSpace(item.Title))

	return f.clock().UTC()
}

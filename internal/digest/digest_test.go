package digest

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"cryptodigest/internal/config"
	"cryptodigest/internal/feed"
)

type stubMarketData struct {
	stubMarket
	stubCalendar
}

func TestDigestSectionOrderIsStable(t *testing.T) {
	cfg := &config.Config{Timezone: "UTC"}
	fetcher := &stubFetcher{results: map[string]feed.FetchResult{}}
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	d := New(cfg, time.UTC, now, fetcher, &stubMarketData{}, slog.Default())
	sections := d.BuildSections(context.Background())

	wantTitles := []string{"Macro", "Listings", "Derivatives", "Unlocks", "Networks/Status", "Risks/Incidents"}

	if len(sections) != len(wantTitles) {
		t.Fatalf("expected %d sections, got %d", len(wantTitles), len(sections))
	}

	for i, want := range wantTitles {
		if sections[i].Title != want {
			t.Fatalf("section %d: got %q, want %q", i, sections[i].Title, want)
		}
	}
}

func TestDigestDisabledSectionsKeepNotes(t *testing.T) {
	cfg := &config.Config{Timezone: "UTC"}
	fetcher := &stubFetcher{results: map[string]feed.FetchResult{}}
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	d := New(cfg, time.UTC, now, fetcher, &stubMarketData{}, slog.Default())

	for _, section := range d.BuildSections(context.Background()) {
		if !section.Empty() {
			t.Fatalf("section %q should be empty with everything disabled", section.Title)
		}
		if section.Note == "" {
			t.Fatalf("section %q should carry a note", section.Title)
		}
	}
}

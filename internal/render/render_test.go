package render

import (
	"strings"
	"testing"
	"time"

	"cryptodigest/internal/domain"
)

func TestSectionRendersTodayItem(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	section := domain.Section{
		Title: "Listings",
		Today: []domain.FeedItem{{
			Title:       "Exchange X will list TOKEN",
			Source:      "sourceName",
			PublishedAt: time.Date(2025, 6, 1, 14, 0, 0, 0, loc),
		}},
	}

	got := Section(section, loc)
	want := "<b>Listings</b>\nToday:\n• 01.06 14:00 — Exchange X will list TOKEN (sourceName)"

	if got != want {
		t.Fatalf("unexpected rendering:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSectionRendersLinkLine(t *testing.T) {
	section := domain.Section{
		Title: "Listings",
		Tomorrow: []domain.FeedItem{{
			Title:       "New listing: COIN",
			Link:        "https://example.com/announcement",
			Source:      "exchangeX",
			PublishedAt: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
		}},
	}

	got := Section(section, time.UTC)
	lines := strings.Split(got, "\n")

	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), got)
	}
	if lines[1] != "Tomorrow:" {
		t.Fatalf("expected tomorrow header, got %q", lines[1])
	}
	if lines[3] != "  https://example.com/announcement" {
		t.Fatalf("expected indented link line, got %q", lines[3])
	}
}

func TestSectionOmitsMissingOptionalFields(t *testing.T) {
	section := domain.Section{
		Title: "Networks/Status",
		Today: []domain.FeedItem{{
			Title:       "Scheduled maintenance",
			PublishedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}},
	}

	got := Section(section, time.UTC)

	if strings.Contains(got, "(") {
		t.Fatalf("expected no source parenthetical, got %q", got)
	}
	if strings.Contains(got, "  http") {
		t.Fatalf("expected no link line, got %q", got)
	}
}

func TestSectionEmptyRendersNoteOnly(t *testing.T) {
	section := domain.Section{
		Title: "Unlocks",
		Note:  "Token unlock sources are not wired up yet.",
	}

	got := Section(section, time.UTC)
	want := "<b>Unlocks</b>\nToken unlock sources are not wired up yet."

	if got != want {
		t.Fatalf("unexpected rendering:\ngot:  %q\nwant: %q", got, want)
	}
	if strings.Contains(got, "Today:") || strings.Contains(got, "Tomorrow:") {
		t.Fatalf("empty section must not render bucket headers: %q", got)
	}
}

func TestSectionEscapesHTML(t *testing.T) {
	section := domain.Section{
		Title: "Listings",
		Today: []domain.FeedItem{{
			Title:       "A & B <listing>",
			PublishedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}},
	}

	got := Section(section, time.UTC)

	if !strings.Contains(got, "A &amp; B &lt;listing&gt;") {
		t.Fatalf("expected escaped title, got %q", got)
	}
}

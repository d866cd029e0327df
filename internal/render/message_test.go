package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"cryptodigest/internal/domain"
)

func TestMessageHeader(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sections := []domain.Section{{Title: "Listings", Note: "No events."}}

	got := Message(sections, time.UTC, now, "")
	if !strings.HasPrefix(got, "<b>Daily digest • 01.06.2025</b>\n\n") {
		t.Fatalf("unexpected header: %q", got)
	}

	withSuffix := Message(sections, time.UTC, now, "evening run")
	if !strings.HasPrefix(withSuffix, "<b>Daily digest • 01.06.2025 • evening run</b>") {
		t.Fatalf("unexpected suffixed header: %q", withSuffix)
	}
}

func TestMessageJoinsSectionsWithBlankLines(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sections := []domain.Section{
		{Title: "Macro", Note: "a"},
		{Title: "Listings", Note: "b"},
	}

	got := Message(sections, time.UTC, now, "")

	if strings.Count(got, "\n\n") != 2 {
		t.Fatalf("expected 2 blank-line separators, got %d in %q", strings.Count(got, "\n\n"), got)
	}
}

func TestSplitMessageShortPassesThrough(t *testing.T) {
	parts := SplitMessage("short message", 100)

	if len(parts) != 1 || parts[0] != "short message" {
		t.Fatalf("unexpected parts: %q", parts)
	}
}

func TestSplitMessageCutsOnLineBoundaries(t *testing.T) {
	// Six 40-char lines: 245 chars total with a limit of 100 splits into
	// three two-line chunks, every boundary at a newline.
	var lines []string
	for i := range 6 {
		lines = append(lines, fmt.Sprintf("line %d %s", i, strings.Repeat("x", 33)))
	}
	message := strings.Join(lines, "\n")

	if len(message) != 245 {
		t.Fatalf("unexpected fixture length: %d", len(message))
	}

	parts := SplitMessage(message, 100)

	if len(parts) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(parts))
	}

	for i, part := range parts {
		if len(part) > 100 {
			t.Fatalf("chunk %d exceeds the limit: %d chars", i, len(part))
		}

		for _, line := range strings.Split(part, "\n") {
			if len(line) != 40 {
				t.Fatalf("chunk %d split a line: %q", i, line)
			}
		}
	}

	if rejoined := strings.Join(parts, "\n"); rejoined != message {
		t.Fatalf("rejoined chunks differ from the original:\ngot:  %q\nwant: %q", rejoined, message)
	}
}

func TestSplitMessageHardCutWithoutNewlines(t *testing.T) {
	message := strings.Repeat("a", 250)

	parts := SplitMessage(message, 100)

	if len(parts) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(parts))
	}
	if len(parts[0]) != 100 || len(parts[1]) != 100 || len(parts[2]) != 50 {
		t.Fatalf("unexpected chunk sizes: %d/%d/%d", len(parts[0]), len(parts[1]), len(parts[2]))
	}
	if strings.Join(parts, "") != message {
		t.Fatalf("hard-cut chunks do not rejoin into the original")
	}
}

func TestSplitMessageHardCutKeepsRunesIntact(t *testing.T) {
	message := strings.Repeat("я", 100)

	for _, part := range SplitMessage(message, 33) {
		if !strings.HasPrefix(part, "я") || !strings.HasSuffix(part, "я") {
			t.Fatalf("chunk boundary split a rune: %q", part)
		}
	}
}

func TestWithPartMarkers(t *testing.T) {
	single := WithPartMarkers([]string{"only"})
	if single[0] != "only" {
		t.Fatalf("single chunk must stay untouched, got %q", single[0])
	}

	marked := WithPartMarkers([]string{"a", "b", "c"})
	want := []string{"a (1/3)", "b (2/3)", "c (3/3)"}

	for i := range want {
		if marked[i] != want[i] {
			t.Fatalf("unexpected marker at %d: got %q, want %q", i, marked[i], want[i])
		}
	}
}

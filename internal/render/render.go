package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"cryptodigest/internal/domain"
)

const (
	itemTimeLayout   = "02.01 15:04"
	headerDateLayout = "02.01.2006"

	defaultNote = "No events matched the configured filters."
)

// Section renders one topical block in Telegram HTML. A section with any
// bucketed items gets Today/Tomorrow sub-blocks; an empty one renders its
// note under the title. Missing optional fields simply omit their fragment.
func Section(section domain.Section, loc *time.Location) string {
	title := fmt.Sprintf("<b>%s</b>", html.EscapeString(section.Title))

	if section.Empty() {
		note := section.Note
		if note == "" {
			note = defaultNote
		}

		return title + "\n" + note
	}

	lines := []string{title}

	if len(section.Today) > 0 {
		lines = append(lines, "Today:")
		lines = append(lines, itemLines(section.Today, loc)...)
	}
	if len(section.Tomorrow) > 0 {
		lines = append(lines, "Tomorrow:")
		lines = append(lines, itemLines(section.Tomorrow, loc)...)
	}

	return strings.Join(lines, "\n")
}

func itemLines(items []domain.FeedItem, loc *time.Location) []string {
	lines := make([]string, 0, len(items))

	for _, item := range items {
		line := fmt.Sprintf("• %s — %s",
			item.PublishedAt.In(loc).Format(itemTimeLayout),
			html.EscapeString(item.Title))

		if item.Source != "" {
			line += fmt.Sprintf(" (%s)", html.EscapeString(item.Source))
		}

		lines = append(lines, line)

		if item.Link != "" {
			lines = append(lines, "  "+item.Link)
		}
	}

	return lines
}

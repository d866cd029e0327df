package render

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"cryptodigest/internal/domain"
)

const headerLabel = "Daily digest"

// Message joins the header and all rendered section blocks with blank-line
// separators.
func Message(sections []domain.Section, loc *time.Location, now time.Time, suffix string) string {
	header := fmt.Sprintf("%s • %s", headerLabel, now.In(loc).Format(headerDateLayout))
	if strings.TrimSpace(suffix) != "" {
		header += " • " + strings.TrimSpace(suffix)
	}

	blocks := []string{fmt.Sprintf("<b>%s</b>", html.EscapeString(header))}

	for _, section := range sections {
		block := Section(section, loc)
		if strings.TrimSpace(block) == "" {
			continue
		}

		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n")
}

// SplitMessage cuts text into chunks of at most maxLen bytes, preferring the
// last newline at or before the limit. Only when a single line overflows the
// limit does it hard-cut, and then never mid-rune.
func SplitMessage(text string, maxLen int) []string {
	if maxLen <= 0 || len(text) <= maxLen {
		return []string{text}
	}

	var parts []string
	buf := text

	for len(buf) > maxLen {
		cut := strings.LastIndex(buf[:maxLen], "\n")
		if cut <= 0 {
			cut = maxLen
			for cut > 0 && !utf8.RuneStart(buf[cut]) {
				cut--
			}
		}

		parts = append(parts, buf[:cut])
		buf = strings.TrimLeft(buf[cut:], "\n")
	}

	if buf != "" {
		parts = append(parts, buf)
	}

	return parts
}

// WithPartMarkers appends an " (i/total)" marker to every chunk when the
// message was split; a single chunk stays untouched.
func WithPartMarkers(parts []string) []string {
	if len(parts) <= 1 {
		return parts
	}

	marked := make([]string, len(parts))
	for i, part := range parts {
		marked[i] = fmt.Sprintf("%s (%d/%d)", part, i+1, len(parts))
	}

	return marked
}

package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"mvdan.cc/xurls/v2"
)

var strictURLRe = xurls.Strict()

// summaryText strips markup from a feed item summary so the digest renders
// plain text. Unparseable markup falls back to the raw string.
func summaryText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return trimmed
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}

// firstURL recovers a link from summary text for entries without one.
func firstURL(text string) string {
	return strictURLRe.FindString(text)
}

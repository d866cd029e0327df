package domain

import "time"

// FeedItem is one normalized event from any source: an RSS entry, a macro
// calendar event, or a flagged derivatives observation. PublishedAt is always
// set; fetchers substitute the fetch time when a source provides nothing
// parseable.
type FeedItem struct {
	Title       string
	Link        string
	Summary     string
	Source      string
	PublishedAt time.Time
}

// Section is one topical block of the digest. Today and Tomorrow are capped
// and sorted ascending by time; Note is shown when both buckets are empty.
type Section struct {
	Title    string
	Today    []FeedItem
	Tomorrow []FeedItem
	Note     string
}

func (s Section) Empty() bool {
	return len(s.Today) == 0 && len(s.Tomorrow) == 0
}

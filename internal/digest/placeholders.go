package digest

import (
	"context"

	"cryptodigest/internal/domain"
)

// PlaceholderBuilder keeps the message layout stable for topics whose data
// source is not wired up (or is disabled): it always yields an empty section
// with a fixed note.
type PlaceholderBuilder struct {
	title string
	note  string
}

func NewPlaceholderBuilder(title, note string) *PlaceholderBuilder {
	return &PlaceholderBuilder{title: title, note: note}
}

func (b *PlaceholderBuilder) Title() string { return b.title }

func (b *PlaceholderBuilder) Build(context.Context) domain.Section {
	return domain.Section{Title: b.title, Note: b.note}
}

package digest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"cryptodigest/internal/config"
	"cryptodigest/internal/domain"
)

// Digest assembles all sections in their fixed configuration order. Each
// builder runs sequentially and independently; a failed source contributes
// an empty section, never a failed run.
type Digest struct {
	builders []Builder
	log      *slog.Logger
}

func New(
	cfg *config.Config,
	loc *time.Location,
	now time.Time,
	fetcher ItemSource,
	markets MarketData,
	log *slog.Logger,
) *Digest {
	window := NewDayWindow(now, loc)
	clock := func() time.Time { return now }

	var macro Builder = NewPlaceholderBuilder("Macro", macroDisabledNote)
	if cfg.Sections.Macro.Enabled && strings.TrimSpace(cfg.Sources.MacroCalendarURL) != "" {
		macro = NewMacroBuilder(markets, cfg.Sources.MacroCalendarURL, cfg.Macro, window, clock, log)
	}

	var derivatives Builder = NewPlaceholderBuilder("Derivatives", derivativesOffNote)
	if cfg.Sections.Derivatives.Enabled {
		derivatives = NewDerivativesBuilder(markets, cfg, window, log)
	}

	builders := []Builder{
		macro,
		NewListingsBuilder(fetcher, cfg.Sources.Listings, cfg.Sections.Listings.Enabled, window, log),
		derivatives,
		NewPlaceholderBuilder("Unlocks", unlocksNote),
		NewStatusBuilder(fetcher, cfg.Sources.StatusPages, cfg.Sections.Status.Enabled, window, log),
		NewPlaceholderBuilder("Risks/Incidents", riskNote),
	}

	return &Digest{builders: builders, log: log}
}

func (d *Digest) BuildSections(ctx context.Context) []domain.Section {
	sections := make([]domain.Section, 0, len(d.builders))

	for _, builder := range d.builders {
		section := builder.Build(ctx)
		sections = append(sections, section)

		d.log.InfoContext(ctx, "Section is built",
			"section", builder.Title(),
			"todayCount", len(section.Today),
			"tomorrowCount", len(section.Tomorrow))
	}

	return sections
}

package digest

import (
	"context"
	"fmt"
	"log/slog"

	"cryptodigest/internal/config"
	"cryptodigest/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	binanceSourceLabel = "Binance"
	deribitSourceLabel = "Deribit"
)

var (
	bpsFactor  = decimal.NewFromInt(10000)
	billionUSD = decimal.NewFromInt(1_000_000_000)
	millionUSD = decimal.NewFromInt(1_000_000)
)

// DerivativesBuilder merges three independent sub-analyses: option expiry
// notionals, funding-rate extremes and 24h open-interest swings. Each
// flagged observation becomes one line item bucketed like any other event.
type DerivativesBuilder struct {
	client           DerivativesSource
	binanceURL       string
	deribitURL       string
	watchlist        []string
	optionCurrencies []string
	thresholds       config.Thresholds
	window           DayWindow
	log              *slog.Logger
}

func NewDerivativesBuilder(
	client DerivativesSource,
	cfg *config.Config,
	window DayWindow,
	log *slog.Logger,
) *DerivativesBuilder {
	return &DerivativesBuilder{
		client:           client,
		binanceURL:       cfg.Sources.BinanceFuturesURL,
		deribitURL:       cfg.Sources.DeribitURL,
		watchlist:        cfg.Watchlist,
		optionCurrencies: cfg.Sources.OptionCurrencies,
		thresholds:       cfg.Thresholds,
		window:           window,
		log:              log,
	}
}

func (b *DerivativesBuilder) Title() string { return "Derivatives" }

func (b *DerivativesBuilder) Build(ctx context.Context) domain.Section {
	section := domain.Section{Title: b.Title(), Note: noEventsNote}

	var flagged []domain.FeedItem
	flagged = append(flagged, b.expiryFlags(ctx)...)
	flagged = append(flagged, b.fundingFlags(ctx)...)
	flagged = append(flagged, b.openInterestFlags(ctx)...)

	section.Today, section.Tomorrow = bucketItems(b.window, flagged)

	return section
}

func (b *DerivativesBuilder) expiryFlags(ctx context.Context) []domain.FeedItem {
	minNotional := decimal.NewFromFloat(b.thresholds.ExpiryNotionalMinUSD)
	if minNotional.IsZero() {
		return nil
	}

	var items []domain.FeedItem

	for _, currency := range b.optionCurrencies {
		notionals, err := b.client.OptionExpiryNotionals(ctx, b.deribitURL, currency)
		if err != nil {
			b.log.ErrorContext(ctx, "Option book is unreachable",
				"error", err,
				"currency", currency)

			continue
		}

		for _, n := range notionals {
			if n.Notional.LessThan(minNotional) {
				continue
			}

			items = append(items, domain.FeedItem{
				Title:       fmt.Sprintf("%s options expiry: $%s notional", n.Currency, formatNotional(n.Notional)),
				Source:      deribitSourceLabel,
				PublishedAt: n.Expiry,
			})
		}
	}

	return items
}

func (b *DerivativesBuilder) fundingFlags(ctx context.Context) []domain.FeedItem {
	threshold := decimal.NewFromFloat(b.thresholds.FundingRateBps)
	if threshold.IsZero() {
		return nil
	}

	var items []domain.FeedItem

	for _, symbol := range b.watchlist {
		rate, err := b.client.LatestFundingRate(ctx, b.binanceURL, symbol)
		if err != nil {
			b.log.WarnContext(ctx, "Failed to fetch funding rate",
				"error", err,
				"symbol", symbol)

			continue
		}

		bps := rate.Rate.Mul(bpsFactor)
		if bps.Abs().LessThan(threshold) {
			continue
		}

		items = append(items, domain.FeedItem{
			Title:       fmt.Sprintf("%s funding %s bps", symbol, signedFixed(bps, 1)),
			Source:      binanceSourceLabel,
			PublishedAt: rate.FundingTime,
		})
	}

	return items
}

func (b *DerivativesBuilder) openInterestFlags(ctx context.Context) []domain.FeedItem {
	threshold := decimal.NewFromFloat(b.thresholds.OIChangePct)
	if threshold.IsZero() {
		return nil
	}

	var items []domain.FeedItem

	for _, symbol := range b.watchlist {
		change, err := b.client.OpenInterestChange24h(ctx, b.binanceURL, symbol)
		if err != nil {
			b.log.WarnContext(ctx, "Failed to fetch open interest history",
				"error", err,
				"symbol", symbol)

			continue
		}

		if change.ChangePct.Abs().LessThan(threshold) {
			continue
		}

		items = append(items, domain.FeedItem{
			Title:       fmt.Sprintf("%s open interest %s%% over 24h", symbol, signedFixed(change.ChangePct, 2)),
			Source:      binanceSourceLabel,
			PublishedAt: change.ObservedAt,
		})
	}

	return items
}

func signedFixed(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	if d.IsPositive() {
		return "+" + s
	}

	return s
}

func formatNotional(n decimal.Decimal) string {
	switch {
	case n.GreaterThanOrEqual(billionUSD):
		return n.Div(billionUSD).StringFixed(2) + "B"
	case n.GreaterThanOrEqual(millionUSD):
		return n.Div(millionUSD).StringFixed(1) + "M"
	default:
		return n.StringFixed(0)
	}
}

package market

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultDeribitURL = "https://www.deribit.com"

	// Options on Deribit settle at 08:00 UTC on the expiry date.
	deribitExpiryHourUTC = 8

	deribitExpiryLayout = "2Jan06"

	minInstrumentNameParts = 2
)

// ExpiryNotional is the aggregate open-interest notional (in USD) of all
// option instruments sharing one expiry date.
type ExpiryNotional struct {
	Currency string
	Expiry   time.Time
	Notional decimal.Decimal
}

type bookSummaryResponse struct {
	Result []bookSummaryEntry `json:"result"`
}

type bookSummaryEntry struct {
	InstrumentName  string  `json:"instrument_name"`
	OpenInterest    float64 `json:"open_interest"`
	UnderlyingPrice float64 `json:"underlying_price"`
}

// OptionExpiryNotionals scans the option book summary for one currency and
// aggregates OI × underlying price per expiry, ascending by expiry date.
// Malformed instrument names are skipped, never abort the scan.
func (c *Client) OptionExpiryNotionals(
	ctx context.Context,
	baseURL string,
	currency string,
) ([]ExpiryNotional, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultDeribitURL
	}

	var summary bookSummaryResponse
	params := url.Values{
		"currency": {currency},
		"kind":     {"option"},
	}
	if err := c.getJSON(ctx, baseURL+"/api/v2/public/get_book_summary_by_currency", params, &summary); err != nil {
		return nil, fmt.Errorf("get book summary (currency = %s): %w", currency, err)
	}

	totals := make(map[time.Time]decimal.Decimal)
	for _, entry := range summary.Result {
		expiry, err := parseInstrumentExpiry(entry.InstrumentName)
		if err != nil {
			c.log.WarnContext(ctx, "Skipping option instrument",
				"error", err,
				"instrument", entry.InstrumentName,
				"currency", currency)

			continue
		}

		notional := decimal.NewFromFloat(entry.OpenInterest).
			Mul(decimal.NewFromFloat(entry.UnderlyingPrice))
		totals[expiry] = totals[expiry].Add(notional)
	}

	notionals := make([]ExpiryNotional, 0, len(totals))
	for expiry, total := range totals {
		notionals = append(notionals, ExpiryNotional{
			Currency: currency,
			Expiry:   expiry,
			Notional: total,
		})
	}

	slices.SortFunc(notionals, func(a, b ExpiryNotional) int {
		return a.Expiry.Compare(b.Expiry)
	})

	return notionals, nil
}

// parseInstrumentExpiry extracts the expiry from instrument names shaped
// like BTC-27JUN25-60000-C.
func parseInstrumentExpiry(name string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(name), "-")
	if len(parts) < minInstrumentNameParts {
		return time.Time{}, fmt.Errorf("unexpected instrument name %q", name)
	}

	expiry, err := time.Parse(deribitExpiryLayout, parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse expiry %q: %w", parts[1], err)
	}

	return expiry.Add(deribitExpiryHourUTC * time.Hour), nil
}

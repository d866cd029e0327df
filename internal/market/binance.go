package market

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultBinanceFuturesURL = "https://fapi.binance.com"

	// ~24h of hourly open interest points.
	openInterestHistPeriod = "1h"
	openInterestHistLimit  = "25"
)

var percentFactor = decimal.NewFromInt(100)

// FundingRate is the most recent settled funding observation for one
// perpetual symbol. Rate is the raw fraction (0.0001 = 1 bps).
type FundingRate struct {
	Symbol      string
	Rate        decimal.Decimal
	FundingTime time.Time
}

type fundingRateEntry struct {
	Symbol      string `json:"symbol"`
	FundingRate string `json:"fundingRate"`
	FundingTime int64  `json:"fundingTime"`
}

func (c *Client) LatestFundingRate(
	ctx context.Context,
	baseURL string,
	symbol string,
) (*FundingRate, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBinanceFuturesURL
	}

	var entries []fundingRateEntry
	params := url.Values{
		"symbol": {symbol},
		"limit":  {"1"},
	}
	if err := c.getJSON(ctx, baseURL+"/fapi/v1/fundingRate", params, &entries); err != nil {
		return nil, fmt.Errorf("get funding rate (symbol = %s): %w", symbol, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("empty funding rate response (symbol = %s)", symbol)
	}

	rate, err := decimal.NewFromString(entries[0].FundingRate)
	if err != nil {
		return nil, fmt.Errorf("parse funding rate %q: %w", entries[0].FundingRate, err)
	}

	return &FundingRate{
		Symbol:      symbol,
		Rate:        rate,
		FundingTime: time.UnixMilli(entries[0].FundingTime).UTC(),
	}, nil
}

// OpenInterestChange is the percent change of a symbol's open interest over
// roughly the last 24 hours, stamped with the newest observation time.
type OpenInterestChange struct {
	Symbol     string
	ChangePct  decimal.Decimal
	ObservedAt time.Time
}

type openInterestPoint struct {
	SumOpenInterest string `json:"sumOpenInterest"`
	Timestamp       int64  `json:"timestamp"`
}

func (c *Client) OpenInterestChange24h(
	ctx context.Context,
	baseURL string,
	symbol string,
) (*OpenInterestChange, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBinanceFuturesURL
	}

	var points []openInterestPoint
	params := url.Values{
		"symbol": {symbol},
		"period": {openInterestHistPeriod},
		"limit":  {openInterestHistLimit},
	}
	if err := c.getJSON(ctx, baseURL+"/futures/data/openInterestHist", params, &points); err != nil {
		return nil, fmt.Errorf("get open interest history (symbol = %s): %w", symbol, err)
	}

	if len(points) < 2 {
		return nil, fmt.Errorf("not enough open interest points (symbol = %s, count = %d)", symbol, len(points))
	}

	first, err := decimal.NewFromString(points[0].SumOpenInterest)
	if err != nil {
		return nil, fmt.Errorf("parse open interest %q: %w", points[0].SumOpenInterest, err)
	}

	last, err := decimal.NewFromString(points[len(points)-1].SumOpenInterest)
	if err != nil {
		return nil, fmt.Errorf("parse open interest %q: %w", points[len(points)-1].SumOpenInterest, err)
	}

	if first.IsZero() {
		return nil, fmt.Errorf("zero open interest baseline (symbol = %s)", symbol)
	}

	return &OpenInterestChange{
		Symbol:     symbol,
		ChangePct:  last.Sub(first).Div(first).Mul(percentFactor),
		ObservedAt: time.UnixMilli(points[len(points)-1].Timestamp).UTC(),
	}, nil
}

package market

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// CalendarEvent is one scheduled macro release from the weekly calendar
// feed. Country carries the feed's currency/country code (USD, EUR, ...);
// Actual, Forecast and Previous are optional display values.
type CalendarEvent struct {
	Title    string
	Country  string
	Impact   string
	Actual   string
	Forecast string
	Previous string
	Time     time.Time
}

type calendarEntry struct {
	Title    string `json:"title"`
	Country  string `json:"country"`
	Date     string `json:"date"`
	Impact   string `json:"impact"`
	Actual   string `json:"actual"`
	Forecast string `json:"forecast"`
	Previous string `json:"previous"`
}

// CalendarEvents fetches and normalizes the calendar feed. Entries with an
// unparseable date are skipped per-item.
func (c *Client) CalendarEvents(
	ctx context.Context,
	feedURL string,
) ([]CalendarEvent, error) {
	var entries []calendarEntry
	if err := c.getJSON(ctx, feedURL, nil, &entries); err != nil {
		return nil, fmt.Errorf("get calendar: %w", err)
	}

	events := make([]CalendarEvent, 0, len(entries))
	for _, entry := range entries {
		eventTime, err := time.Parse(time.RFC3339, strings.TrimSpace(entry.Date))
		if err != nil {
			c.log.WarnContext(ctx, "Skipping calendar event with bad date",
				"error", err,
				"title", entry.Title,
				"date", entry.Date)

			continue
		}

		events = append(events, CalendarEvent{
			Title:    strings.TrimSpace(entry.Title),
			Country:  strings.ToUpper(strings.TrimSpace(entry.Country)),
			Impact:   strings.TrimSpace(entry.Impact),
			Actual:   strings.TrimSpace(entry.Actual),
			Forecast: strings.TrimSpace(entry.Forecast),
			Previous: strings.TrimSpace(entry.Previous),
			Time:     eventTime,
		})
	}

	return events, nil
}

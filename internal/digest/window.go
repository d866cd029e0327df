package digest

import "time"

type Bucket int

const (
	BucketNone Bucket = iota
	BucketToday
	BucketTomorrow
)

// DayWindow holds the local-day boundaries used for bucketing. Both buckets
// are half-open: [TodayStart, TomorrowStart) and [TomorrowStart,
// DayAfterStart).
type DayWindow struct {
	TodayStart    time.Time
	TomorrowStart time.Time
	DayAfterStart time.Time

	loc *time.Location
}

func NewDayWindow(now time.Time, loc *time.Location) DayWindow {
	local := now.In(loc)
	todayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	return DayWindow{
		TodayStart:    todayStart,
		TomorrowStart: todayStart.AddDate(0, 0, 1),
		DayAfterStart: todayStart.AddDate(0, 0, 2),
		loc:           loc,
	}
}

func (w DayWindow) Classify(t time.Time) Bucket {
	local := t.In(w.loc)

	switch {
	case !local.Before(w.TodayStart) && local.Before(w.TomorrowStart):
		return BucketToday
	case !local.Before(w.TomorrowStart) && local.Before(w.DayAfterStart):
		return BucketTomorrow
	default:
		return BucketNone
	}
}

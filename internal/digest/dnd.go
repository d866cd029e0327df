package digest

import (
	"fmt"
	"time"

	"cryptodigest/internal/config"
)

const dndTimeLayout = "15:04"

// InDNDWindow reports whether the local time falls inside the configured
// do-not-disturb window. When start >= end the window spans midnight, so
// 23:00-06:00 covers times both before and after it.
func InDNDWindow(dnd config.DND, localNow time.Time) (bool, error) {
	if !dnd.Enabled {
		return false, nil
	}

	start, err := time.Parse(dndTimeLayout, dnd.Start)
	if err != nil {
		return false, fmt.Errorf("parse DND start %q: %w", dnd.Start, err)
	}

	end, err := time.Parse(dndTimeLayout, dnd.End)
	if err != nil {
		return false, fmt.Errorf("parse DND end %q: %w", dnd.End, err)
	}

	nowMinutes := localNow.Hour()*60 + localNow.Minute()
	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := end.Hour()*60 + end.Minute()

	if startMinutes < endMinutes {
		return nowMinutes >= startMinutes && nowMinutes < endMinutes, nil
	}

	return nowMinutes >= startMinutes || nowMinutes < endMinutes, nil
}

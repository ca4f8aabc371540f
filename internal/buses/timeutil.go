package buses

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var taipei = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}()

// ParseClock parses "H:MM" or "HH:MM" into minutes after midnight.
func ParseClock(s string) (int, bool) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// FormatClock renders minutes after midnight as "HH:MM", wrapping past 24h.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddTime adds minutes to a "HH:MM" clock time. The clock wraps at midnight
// without any notion of the next day. Unparseable input is returned as is.
func AddTime(s string, minutes int) string {
	t, ok := ParseClock(s)
	if !ok {
		return s
	}
	return FormatClock(t + minutes)
}

// sortKey orders parseable times first.
func sortKey(s string) int {
	if t, ok := ParseClock(s); ok {
		return t
	}
	return minutesPerDay
}

// AfterSpecificTime keeps the items whose time is at or after ref. timeOf
// reports false for items without a time; those are dropped. An empty or
// unparseable ref returns items unchanged.
func AfterSpecificTime[T any](items []T, ref string, timeOf func(T) (string, bool)) []T {
	refMinutes, ok := ParseClock(ref)
	if !ok {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		s, ok := timeOf(item)
		if !ok {
			continue
		}
		t, ok := ParseClock(s)
		if !ok || t < refMinutes {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ResolveDay turns DayCurrent into the service day for now in Taiwan.
func ResolveDay(day Day, now time.Time) Day {
	if day != DayCurrent {
		return day
	}
	switch now.In(taipei).Weekday() {
	case time.Saturday, time.Sunday:
		return Weekend
	default:
		return Weekday
	}
}

// CurrentClock is the "HH:MM" wall clock in Taiwan.
func CurrentClock(now time.Time) string {
	return now.In(taipei).Format("15:04")
}

// InTaipei converts t to Taiwan local time.
func InTaipei(t time.Time) time.Time {
	return t.In(taipei)
}

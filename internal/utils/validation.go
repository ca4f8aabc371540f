package utils

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"nthudata.org/api/internal/buses"
)

var (
	// Detect potentially dangerous characters - injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

const maxStopNameLength = 100

// AfterNow is the after value that filters from the current Taiwan time.
const AfterNow = "now"

// ValidateStopName checks a stop name taken from the URL path.
func ValidateStopName(name string) error {
	if name == "" {
		return errors.New("stop name cannot be empty")
	}
	if !utf8.ValidString(name) {
		return errors.New("stop name is not valid UTF-8")
	}
	if utf8.RuneCountInString(name) > maxStopNameLength {
		return errors.New("stop name too long (max 100 characters)")
	}
	if dangerousPattern.MatchString(name) {
		return errors.New("stop name contains invalid characters")
	}
	return nil
}

// ValidateAfter accepts "", "now", or an H:MM / HH:MM clock time.
func ValidateAfter(after string) error {
	if after == "" || after == AfterNow {
		return nil
	}
	if _, ok := buses.ParseClock(after); !ok {
		return errors.New("after must be HH:MM or now")
	}
	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace
func SanitizeInput(input string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(input, ""))
}

// ScheduleQuery is a validated set of schedule query parameters. Day is
// resolved to weekday or weekend and After to a clock time or "".
type ScheduleQuery struct {
	RouteType buses.RouteType
	Day       buses.Day
	Direction buses.Direction
	After     string
	Detailed  bool
}

// ParseScheduleQuery reads route_type, day, direction, after and detailed.
// Missing values default to all, current and all. The second return value
// holds per-field errors and is nil when every parameter is valid.
func ParseScheduleQuery(query url.Values, now time.Time) (ScheduleQuery, map[string][]string) {
	fieldErrors := make(map[string][]string)
	q := ScheduleQuery{
		RouteType: buses.RouteTypeAll,
		Day:       buses.DayCurrent,
		Direction: buses.DirectionAll,
	}

	if v := SanitizeInput(query.Get("route_type")); v != "" {
		rt, ok := buses.ParseRouteType(strings.ToLower(v))
		if !ok {
			fieldErrors["route_type"] = append(fieldErrors["route_type"], "route_type must be one of main, nanda, all")
		}
		q.RouteType = rt
	}

	if v := SanitizeInput(query.Get("day")); v != "" {
		day, ok := buses.ParseDay(strings.ToLower(v))
		if !ok {
			fieldErrors["day"] = append(fieldErrors["day"], "day must be one of weekday, weekend, current")
		}
		q.Day = day
	}
	q.Day = buses.ResolveDay(q.Day, now)

	if v := SanitizeInput(query.Get("direction")); v != "" {
		dir, ok := buses.ParseDirection(strings.ToLower(v))
		if !ok {
			fieldErrors["direction"] = append(fieldErrors["direction"], "direction must be one of up, down, all")
		}
		q.Direction = dir
	}

	after := SanitizeInput(query.Get("after"))
	if err := ValidateAfter(after); err != nil {
		fieldErrors["after"] = append(fieldErrors["after"], err.Error())
	} else if after == AfterNow {
		q.After = buses.CurrentClock(now)
	} else {
		q.After = after
	}

	if v := query.Get("detailed"); v != "" {
		detailed, err := strconv.ParseBool(v)
		if err != nil {
			fieldErrors["detailed"] = append(fieldErrors["detailed"], "detailed must be a boolean")
		}
		q.Detailed = detailed
	}

	if len(fieldErrors) > 0 {
		return q, fieldErrors
	}
	return q, nil
}

package models

import (
	"time"

	"nthudata.org/api/internal/buses"
)

// CurrentTime is the server clock as the schedule queries see it: Clock is
// what after=now filters from and Day is what day=current resolves to.
type CurrentTime struct {
	ReadableTime string    `json:"readableTime"`
	Time         int64     `json:"time"`
	Clock        string    `json:"clock"`
	Day          buses.Day `json:"day"`
}

func NewCurrentTime(t time.Time) CurrentTime {
	return CurrentTime{
		ReadableTime: buses.InTaipei(t).Format(time.RFC3339),
		Time:         t.UnixMilli(),
		Clock:        buses.CurrentClock(t),
		Day:          buses.ResolveDay(buses.DayCurrent, t),
	}
}

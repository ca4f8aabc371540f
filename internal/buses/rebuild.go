package buses

import (
	"encoding/json"
	"sort"
	"strings"
)

// gen2DepartureOffset is how long a bus takes from General Building II back
// to the run's main gate departure slot.
const gen2DepartureOffset = 7

// snapshot is one immutable generation of derived bus data.
type snapshot struct {
	loaded        bool
	commitHash    string
	payload       json.RawMessage
	routeInfo     map[routeInfoKey]RouteInfo
	raw           map[ScheduleKey][]BusEntry
	detailed      map[ScheduleKey][]DetailedBusEntry
	stopSchedules map[string]map[ScheduleKey][]StopScheduleRecord
}

func emptySnapshot() *snapshot {
	return &snapshot{
		routeInfo:     map[routeInfoKey]RouteInfo{},
		raw:           map[ScheduleKey][]BusEntry{},
		detailed:      map[ScheduleKey][]DetailedBusEntry{},
		stopSchedules: map[string]map[ScheduleKey][]StopScheduleRecord{},
	}
}

func concreteKeys() []ScheduleKey {
	keys := make([]ScheduleKey, 0, 8)
	for _, rt := range concreteRouteTypes {
		for _, day := range days {
			for _, dir := range concreteDirections {
				keys = append(keys, ScheduleKey{RouteType: rt, Day: day, Direction: dir})
			}
		}
	}
	return keys
}

// buildSnapshot derives every schedule view from a decoded payload.
func buildSnapshot(commitHash string, raw json.RawMessage, p payload) *snapshot {
	s := emptySnapshot()
	s.loaded = true
	s.commitHash = commitHash
	s.payload = raw

	for _, rt := range concreteRouteTypes {
		for _, dir := range concreteDirections {
			s.routeInfo[routeInfoKey{RouteType: rt, Direction: dir}] = p.routeInfo(rt, dir)
		}
	}

	for _, key := range concreteKeys() {
		s.raw[key] = classifyEntries(key, p.schedule(key))
	}

	gen2 := buildGen2Index(s.raw)
	for _, key := range concreteKeys() {
		s.detailed[key] = detailEntries(key, s.raw[key], gen2, s.stopSchedules)
	}

	for key := range s.raw {
		sortByTime(s.raw[key], func(e BusEntry) string { return e.Time })
	}
	for key := range s.detailed {
		sortByTime(s.detailed[key], func(e DetailedBusEntry) string { return e.DepInfo.Time })
	}
	for _, buckets := range s.stopSchedules {
		for key := range buckets {
			sortByTime(buckets[key], func(r StopScheduleRecord) string { return r.ArriveTime })
		}
	}

	combineBuckets(s.raw, func(e BusEntry) string { return e.Time })
	combineBuckets(s.detailed, func(e DetailedBusEntry) string { return e.DepInfo.Time })
	for _, buckets := range s.stopSchedules {
		combineBuckets(buckets, func(r StopScheduleRecord) string { return r.ArriveTime })
	}

	return s
}

func classifyEntries(key ScheduleKey, rows []rawEntry) []BusEntry {
	entries := make([]BusEntry, 0, len(rows))
	for _, row := range rows {
		entry := BusEntry{
			Time:        row.Time,
			Description: row.Description,
			BusType:     ClassifyBusType(key.RouteType, key.Day, row.Description),
		}
		if key.RouteType == RouteTypeNanda {
			entry.DepStop = nandaDepStop(key.Direction)
		} else {
			entry.Line = row.Line
			entry.DepStop = row.DepStop
		}
		entries = append(entries, entry)
	}
	return entries
}

// gen2Index marks time+line slots that continue a run which left General
// Building II earlier.
type gen2Index map[string]bool

func gen2Key(clock, line string) string {
	return clock + strings.ToLower(strings.TrimSpace(line))
}

// buildGen2Index projects every General Building II departure forward to
// the slot the same logical run occupies in the other listing. Both the
// zero-padded and the bare-hour spelling are recorded.
func buildGen2Index(raw map[ScheduleKey][]BusEntry) gen2Index {
	idx := gen2Index{}
	for key, entries := range raw {
		if key.RouteType != RouteTypeMain {
			continue
		}
		for _, e := range entries {
			if !strings.Contains(e.DepStop, markerGen2) {
				continue
			}
			if _, ok := ParseClock(e.Time); !ok {
				continue
			}
			projected := AddTime(e.Time, gen2DepartureOffset)
			idx[gen2Key(projected, e.Line)] = true
			if trimmed := strings.TrimPrefix(projected, "0"); trimmed != projected {
				idx[gen2Key(trimmed, e.Line)] = true
			}
		}
	}
	return idx
}

func (idx gen2Index) continues(e BusEntry) bool {
	return idx[gen2Key(strings.TrimSpace(e.Time), e.Line)]
}

func resolveRoute(key ScheduleKey, e BusEntry, gen2 gen2Index) *Route {
	if key.RouteType == RouteTypeNanda {
		return ResolveNandaRoute(key.Direction, e.Description)
	}
	return ResolveMainCampusRoute(e.Line, e.DepStop, gen2.continues(e))
}

func detailEntries(key ScheduleKey, entries []BusEntry, gen2 gen2Index, stops map[string]map[ScheduleKey][]StopScheduleRecord) []DetailedBusEntry {
	detailed := make([]DetailedBusEntry, 0, len(entries))
	for _, e := range entries {
		d := DetailedBusEntry{DepInfo: e, StopsTime: []StopTime{}}

		route := resolveRoute(key, e, gen2)
		if route != nil {
			d.RouteID = route.ID
			for i, stop := range route.Stops {
				arrive := AddTime(e.Time, route.TimeOffsets[i])
				d.StopsTime = append(d.StopsTime, StopTime{Stop: stop.Name, ArriveTime: arrive})

				if stops[stop.ID] == nil {
					stops[stop.ID] = map[ScheduleKey][]StopScheduleRecord{}
				}
				stops[stop.ID][key] = append(stops[stop.ID][key], StopScheduleRecord{
					ArriveTime:  arrive,
					DepTime:     e.Time,
					DepStop:     e.DepStop,
					Description: e.Description,
					BusType:     e.BusType,
				})
			}
		}
		detailed = append(detailed, d)
	}
	return detailed
}

func sortByTime[T any](items []T, timeOf func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return sortKey(timeOf(items[i])) < sortKey(timeOf(items[j]))
	})
}

func mergeSorted[T any](timeOf func(T) string, lists ...[]T) []T {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	merged := make([]T, 0, n)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	sortByTime(merged, timeOf)
	return merged
}

// combineBuckets derives the route type "all" and direction "all" views,
// plus the all/all view per day, from already sorted concrete buckets.
func combineBuckets[T any](buckets map[ScheduleKey][]T, timeOf func(T) string) {
	for _, day := range days {
		for _, dir := range concreteDirections {
			buckets[ScheduleKey{RouteTypeAll, day, dir}] = mergeSorted(timeOf,
				buckets[ScheduleKey{RouteTypeMain, day, dir}],
				buckets[ScheduleKey{RouteTypeNanda, day, dir}])
		}
		for _, rt := range concreteRouteTypes {
			buckets[ScheduleKey{rt, day, DirectionAll}] = mergeSorted(timeOf,
				buckets[ScheduleKey{rt, day, DirectionUp}],
				buckets[ScheduleKey{rt, day, DirectionDown}])
		}
		buckets[ScheduleKey{RouteTypeAll, day, DirectionAll}] = mergeSorted(timeOf,
			buckets[ScheduleKey{RouteTypeMain, day, DirectionAll}],
			buckets[ScheduleKey{RouteTypeNanda, day, DirectionAll}])
	}
}

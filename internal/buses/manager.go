// Package buses models the campus bus network and keeps schedule views
// derived from the upstream timetable current.
package buses

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"nthudata.org/api/internal/logging"
	"nthudata.org/api/internal/nthudata"
)

// Manager owns the derived bus schedules. Readers see the last completed
// rebuild; UpdateData publishes a new one atomically.
type Manager struct {
	fetcher  nthudata.Fetcher
	logger   *slog.Logger
	current  atomic.Pointer[snapshot]
	group    singleflight.Group
	rebuilds atomic.Int64
}

// NewManager creates a Manager with no data. Call UpdateData to load it.
func NewManager(fetcher nthudata.Fetcher, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		fetcher: fetcher,
		logger:  logger.With(slog.String("component", "bus_manager")),
	}
	m.current.Store(emptySnapshot())
	return m
}

// UpdateData checks the upstream commit hash and rebuilds every view when it
// changed. Fetch failures keep the current data. Concurrent callers share a
// single fetch.
func (m *Manager) UpdateData(ctx context.Context) {
	_, _, _ = m.group.Do(PayloadKey, func() (any, error) {
		m.update(ctx)
		return nil, nil
	})
}

func (m *Manager) update(ctx context.Context) {
	snap, err := m.fetcher.Get(ctx, PayloadKey)
	if err != nil {
		logging.LogWarning(m.logger, "bus data unavailable, keeping cached schedules", err,
			slog.String("key", PayloadKey),
			slog.String("commit", m.LastCommitHash()))
		return
	}
	if snap == nil {
		logging.LogWarning(m.logger, "bus data fetch returned nothing", nil, slog.String("key", PayloadKey))
		return
	}

	cur := m.current.Load()
	if cur.loaded && cur.commitHash == snap.CommitHash {
		return
	}

	start := time.Now()
	p, err := decodePayload(snap.Payload)
	if err != nil {
		logging.LogWarning(m.logger, "malformed bus payload, building empty schedules", err,
			slog.String("commit", snap.CommitHash))
	}

	next := buildSnapshot(snap.CommitHash, snap.Payload, p)
	m.current.Store(next)
	m.rebuilds.Add(1)

	logging.LogOperation(m.logger, "bus_schedules_rebuilt",
		slog.String("commit", snap.CommitHash),
		slog.String("previous_commit", cur.commitHash),
		slog.Int("stops", len(next.stopSchedules)),
		slog.Duration("duration", time.Since(start)))
}

// LastCommitHash is the commit the current views were built from, or ""
// before the first successful update.
func (m *Manager) LastCommitHash() string {
	return m.current.Load().commitHash
}

// RebuildCount reports how many times the views were rebuilt.
func (m *Manager) RebuildCount() int64 {
	return m.rebuilds.Load()
}

// LastPayload returns the raw upstream document of the current views.
func (m *Manager) LastPayload() json.RawMessage {
	return slices.Clone(m.current.Load().payload)
}

// RouteInfo returns route metadata. An empty or unknown filter matches
// every value of that dimension.
func (m *Manager) RouteInfo(routeType RouteType, direction Direction) []RouteInfo {
	s := m.current.Load()

	matchType := routeType == RouteTypeMain || routeType == RouteTypeNanda
	matchDir := direction == DirectionUp || direction == DirectionDown

	out := []RouteInfo{}
	for _, rt := range concreteRouteTypes {
		if matchType && rt != routeType {
			continue
		}
		for _, dir := range concreteDirections {
			if matchDir && dir != direction {
				continue
			}
			if info, ok := s.routeInfo[routeInfoKey{RouteType: rt, Direction: dir}]; ok {
				out = append(out, info)
			}
		}
	}
	return out
}

// Schedule returns the departures of one bucket sorted by time.
func (m *Manager) Schedule(routeType RouteType, day Day, direction Direction) []BusEntry {
	key := ScheduleKey{RouteType: routeType, Day: day, Direction: direction}
	return cloneList(m.current.Load().raw[key])
}

// DetailedSchedule returns the departures of one bucket with projected
// arrivals at every stop.
func (m *Manager) DetailedSchedule(routeType RouteType, day Day, direction Direction) []DetailedBusEntry {
	key := ScheduleKey{RouteType: routeType, Day: day, Direction: direction}
	return cloneList(m.current.Load().detailed[key])
}

// StopsInfo lists every stop.
func (m *Manager) StopsInfo() []Stop {
	return Stops()
}

// StopSchedule returns the buses calling at the stop named name, sorted by
// arrival. Unknown names yield an empty list.
func (m *Manager) StopSchedule(name string, routeType RouteType, day Day, direction Direction) []StopScheduleRecord {
	stop, ok := StopByName(name)
	if !ok {
		return []StopScheduleRecord{}
	}
	key := ScheduleKey{RouteType: routeType, Day: day, Direction: direction}
	return cloneList(m.current.Load().stopSchedules[stop.ID][key])
}

// Routes returns the static route graph.
func (m *Manager) Routes() []Route {
	return Routes()
}

// cloneList copies a bucket so callers cannot mutate the shared snapshot.
// Missing buckets become empty lists.
func cloneList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return slices.Clone(items)
}

package buses

import (
	"encoding/json"
	"fmt"
)

// PayloadKey is the upstream file holding the bus timetable.
const PayloadKey = "buses.json"

// rawEntry is one row as delivered upstream. Nanda rows carry no line or
// departure stop.
type rawEntry struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Line        string `json:"line"`
	DepStop     string `json:"dep_stop"`
}

func destinationName(routeType RouteType, direction Direction) string {
	switch {
	case routeType == RouteTypeMain && direction == DirectionUp:
		return "TSMCBuilding"
	case routeType == RouteTypeMain && direction == DirectionDown:
		return "MainGate"
	case routeType == RouteTypeNanda && direction == DirectionUp:
		return "Nanda"
	default:
		return "MainCampus"
	}
}

func scheduleField(key ScheduleKey) string {
	return fmt.Sprintf("%sBusScheduleToward%s", key.Day, destinationName(key.RouteType, key.Direction))
}

func routeInfoField(routeType RouteType, direction Direction) string {
	return fmt.Sprintf("toward%sInfo", destinationName(routeType, direction))
}

// payload is the decoded upstream document. Missing or malformed fields
// decode to empty values.
type payload struct {
	fields map[string]json.RawMessage
}

func decodePayload(data []byte) (payload, error) {
	p := payload{fields: map[string]json.RawMessage{}}
	if len(data) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(data, &p.fields); err != nil {
		return payload{fields: map[string]json.RawMessage{}}, fmt.Errorf("decode bus payload: %w", err)
	}
	return p, nil
}

func (p payload) routeInfo(routeType RouteType, direction Direction) RouteInfo {
	var info RouteInfo
	if raw, ok := p.fields[routeInfoField(routeType, direction)]; ok {
		if err := json.Unmarshal(raw, &info); err != nil {
			return RouteInfo{}
		}
	}
	return info
}

func (p payload) schedule(key ScheduleKey) []rawEntry {
	raw, ok := p.fields[scheduleField(key)]
	if !ok {
		return nil
	}
	var entries []rawEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries
	}

	// Decode row by row so one bad row does not drop the list.
	entries = nil
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}
	for _, row := range rows {
		var e rawEntry
		if err := json.Unmarshal(row, &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

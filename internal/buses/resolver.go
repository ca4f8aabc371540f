package buses

import "strings"

// Keywords found in Nanda shuttle descriptions that mark the route 2 detour.
var nandaRoute2Markers = []string{"路線二", "路線2", "教育學院"}

const route83Marker = "83"

// largeBusMarker tags main campus departures served by a large bus.
const largeBusMarker = "大型"

type stopZone int

const (
	zoneUnknown stopZone = iota
	zoneTSMC
	zoneGate
	zoneGen2
)

func classifyDepStop(depStop string) stopZone {
	switch {
	case strings.Contains(depStop, markerTSMC):
		return zoneTSMC
	case strings.Contains(depStop, markerGate):
		return zoneGate
	case strings.Contains(depStop, markerGen2):
		return zoneGen2
	default:
		return zoneUnknown
	}
}

type lineRoutes struct {
	up, upFromGen2, down, downToGen2 *Route
}

var mainLines = map[string]lineRoutes{
	"red":   {up: &RedM1ToM5, upFromGen2: &RedM2ToM5, down: &RedM5ToM1, downToGen2: &RedM5ToM2},
	"green": {up: &GreenM1ToM5, upFromGen2: &GreenM2ToM5, down: &GreenM5ToM1, downToGen2: &GreenM5ToM2},
}

// ResolveMainCampusRoute picks the route variant a main campus departure
// runs on. It returns nil when line or departure stop are not recognised.
func ResolveMainCampusRoute(line, depStop string, isFromGen2 bool) *Route {
	routes, ok := mainLines[strings.ToLower(strings.TrimSpace(line))]
	if !ok {
		return nil
	}

	switch classifyDepStop(depStop) {
	case zoneTSMC:
		if isFromGen2 {
			return routes.downToGen2
		}
		return routes.down
	case zoneGate:
		return routes.up
	case zoneGen2:
		return routes.upFromGen2
	default:
		return nil
	}
}

// ResolveNandaRoute picks the Nanda shuttle variant. Route 1 is the default
// when the description carries no route 2 marker.
func ResolveNandaRoute(direction Direction, description string) *Route {
	route2 := isNandaRoute2(description)
	if direction == DirectionDown {
		if route2 {
			return &NandaRoute2Return
		}
		return &NandaRoute1Return
	}
	if route2 {
		return &NandaRoute2Outbound
	}
	return &NandaRoute1Outbound
}

func isNandaRoute2(description string) bool {
	for _, marker := range nandaRoute2Markers {
		if strings.Contains(description, marker) {
			return true
		}
	}
	return false
}

// ClassifyBusType guesses the vehicle size from the route type, day and
// description.
func ClassifyBusType(routeType RouteType, day Day, description string) BusType {
	if routeType == RouteTypeNanda && strings.Contains(description, route83Marker) {
		return BusTypeRoute83
	}
	if routeType == RouteTypeMain && strings.Contains(description, largeBusMarker) {
		return BusTypeLarge
	}
	if routeType == RouteTypeNanda && day == Weekday {
		return BusTypeLarge
	}
	return BusTypeMiddle
}

// nandaDepStop is the departure stop Nanda rows imply but never state.
func nandaDepStop(direction Direction) string {
	if direction == DirectionUp {
		return "校門口"
	}
	return "南大"
}

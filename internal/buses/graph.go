package buses

import "fmt"

// Route is one directed route variant: an ordered list of stops with
// cumulative minute offsets measured from the route's first stop.
type Route struct {
	ID          string
	Stops       []Stop
	TimeOffsets []int
}

// CreateRoute builds a Route from stop ids and per-leg travel deltas.
// deltas[i] is the time from the previous stop to stop i; deltas[0] is the
// time needed to reach the first stop.
func CreateRoute(id string, stopIDs []string, deltas []int) (Route, error) {
	if len(stopIDs) != len(deltas) {
		return Route{}, fmt.Errorf("route %s: %d stops but %d deltas", id, len(stopIDs), len(deltas))
	}

	route := Route{
		ID:          id,
		Stops:       make([]Stop, 0, len(stopIDs)),
		TimeOffsets: make([]int, 0, len(deltas)),
	}

	total := 0
	for i, stopID := range stopIDs {
		stop, ok := StopByID(stopID)
		if !ok {
			return Route{}, fmt.Errorf("route %s: unknown stop id %q", id, stopID)
		}
		if deltas[i] < 0 {
			return Route{}, fmt.Errorf("route %s: negative delta at stop %s", id, stopID)
		}
		total += deltas[i]
		route.Stops = append(route.Stops, stop)
		route.TimeOffsets = append(route.TimeOffsets, total)
	}

	return route, nil
}

func mustCreateRoute(id string, stopIDs []string, deltas []int) Route {
	route, err := CreateRoute(id, stopIDs, deltas)
	if err != nil {
		panic(err)
	}
	return route
}

// Main campus loop. Red climbs via Maple Path and returns via the parking
// lots; green runs the loop the other way round.
var (
	RedM1ToM5 = mustCreateRoute("red_M1_M5", []string{"M1", "M2", "M3", "M4", "M5"}, []int{0, 1, 2, 2, 1})
	RedM2ToM5 = mustCreateRoute("red_M2_M5", []string{"M2", "M3", "M4", "M5"}, []int{0, 2, 2, 1})
	RedM5ToM1 = mustCreateRoute("red_M5_M1", []string{"M5", "M7", "M6", "M2", "M1"}, []int{0, 1, 1, 3, 2})
	RedM5ToM2 = mustCreateRoute("red_M5_M2", []string{"M5", "M7", "M6", "M2"}, []int{0, 1, 1, 3})

	GreenM1ToM5 = mustCreateRoute("green_M1_M5", []string{"M1", "M2", "M6", "M7", "M5"}, []int{0, 1, 3, 1, 2})
	GreenM2ToM5 = mustCreateRoute("green_M2_M5", []string{"M2", "M6", "M7", "M5"}, []int{0, 3, 1, 2})
	GreenM5ToM1 = mustCreateRoute("green_M5_M1", []string{"M5", "M4", "M3", "M2", "M1"}, []int{0, 1, 2, 2, 1})
	GreenM5ToM2 = mustCreateRoute("green_M5_M2", []string{"M5", "M4", "M3", "M2"}, []int{0, 1, 2, 2})
)

// Nanda shuttle. Route 2 detours past the south gate on its way to and from
// the Nanda campus.
var (
	NandaRoute1Outbound = mustCreateRoute("nanda_route1_M1_S1", []string{"M1", "M2", "M4", "M5", "S1"}, []int{0, 1, 3, 1, 25})
	NandaRoute2Outbound = mustCreateRoute("nanda_route2_M1_S1", []string{"M1", "M2", "M4", "M5", "M7", "S1"}, []int{0, 1, 3, 1, 1, 28})
	NandaRoute1Return   = mustCreateRoute("nanda_route1_S1_M1", []string{"S1", "M5", "M4", "M2", "M1"}, []int{0, 25, 1, 3, 1})
	NandaRoute2Return   = mustCreateRoute("nanda_route2_S1_M1", []string{"S1", "M7", "M5", "M4", "M2", "M1"}, []int{0, 28, 1, 1, 3, 1})
)

// Routes returns every route variant of the graph.
func Routes() []Route {
	return []Route{
		RedM1ToM5, RedM2ToM5, RedM5ToM1, RedM5ToM2,
		GreenM1ToM5, GreenM2ToM5, GreenM5ToM1, GreenM5ToM2,
		NandaRoute1Outbound, NandaRoute2Outbound, NandaRoute1Return, NandaRoute2Return,
	}
}

package buses

// RouteType separates the main campus loop from the Nanda shuttle.
type RouteType string

const (
	RouteTypeMain  RouteType = "main"
	RouteTypeNanda RouteType = "nanda"
	RouteTypeAll   RouteType = "all"
)

// Day is the service day of a schedule.
type Day string

const (
	Weekday Day = "weekday"
	Weekend Day = "weekend"
	// DayCurrent is resolved to Weekday or Weekend by ResolveDay.
	DayCurrent Day = "current"
)

// Direction is the campus convention for the two ways a line runs. Up is
// toward the TSMC Building or the Nanda campus.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionAll  Direction = "all"
)

// BusType classifies the vehicle serving a departure.
type BusType string

const (
	BusTypeRoute83 BusType = "route_83"
	BusTypeLarge   BusType = "large-sized_bus"
	BusTypeMiddle  BusType = "middle-sized_bus"
)

var (
	concreteRouteTypes = []RouteType{RouteTypeMain, RouteTypeNanda}
	days               = []Day{Weekday, Weekend}
	concreteDirections = []Direction{DirectionUp, DirectionDown}
)

// ParseRouteType validates a route type query value.
func ParseRouteType(s string) (RouteType, bool) {
	switch rt := RouteType(s); rt {
	case RouteTypeMain, RouteTypeNanda, RouteTypeAll:
		return rt, true
	}
	return "", false
}

// ParseDay validates a day query value. DayCurrent is accepted.
func ParseDay(s string) (Day, bool) {
	switch d := Day(s); d {
	case Weekday, Weekend, DayCurrent:
		return d, true
	}
	return "", false
}

// ParseDirection validates a direction query value.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(s); d {
	case DirectionUp, DirectionDown, DirectionAll:
		return d, true
	}
	return "", false
}

// ScheduleKey addresses one schedule bucket.
type ScheduleKey struct {
	RouteType RouteType
	Day       Day
	Direction Direction
}

type routeInfoKey struct {
	RouteType RouteType
	Direction Direction
}

// RouteInfo is route metadata as published upstream.
type RouteInfo struct {
	Direction string `json:"direction"`
	Duration  string `json:"duration"`
	Route     string `json:"route"`
	RouteEN   string `json:"routeEN"`
}

// BusEntry is a single scheduled departure.
type BusEntry struct {
	Time        string  `json:"time"`
	Description string  `json:"description"`
	Line        string  `json:"line,omitempty"`
	DepStop     string  `json:"dep_stop"`
	BusType     BusType `json:"bus_type"`
}

// StopTime is a projected arrival at one stop.
type StopTime struct {
	Stop       string `json:"stop"`
	ArriveTime string `json:"arrive_time"`
}

// DetailedBusEntry pairs a departure with its stop-by-stop arrivals. RouteID
// and StopsTime are empty when no route variant could be resolved.
type DetailedBusEntry struct {
	DepInfo   BusEntry   `json:"dep_info"`
	RouteID   string     `json:"route_id,omitempty"`
	StopsTime []StopTime `json:"stops_time"`
}

// StopScheduleRecord is one bus calling at a stop.
type StopScheduleRecord struct {
	ArriveTime  string  `json:"arrive_time"`
	DepTime     string  `json:"dep_time"`
	DepStop     string  `json:"dep_stop"`
	Description string  `json:"description"`
	BusType     BusType `json:"bus_type"`
}

package models

import (
	"strconv"

	"github.com/twpayne/go-polyline"

	"nthudata.org/api/internal/buses"
	"nthudata.org/api/internal/utils"
)

// Polyline is an encoded polyline of a route variant's stops.
type Polyline struct {
	Length int    `json:"length"`
	Points string `json:"points"`
}

// BusRoute describes one route variant of the bus graph. Heading is the
// compass direction from its first stop to its last.
type BusRoute struct {
	ID          string   `json:"id"`
	Stops       []string `json:"stops"`
	TimeOffsets []int    `json:"timeOffsets"`
	Heading     string   `json:"heading,omitempty"`
	Polyline    Polyline `json:"polyline"`
}

// NewBusRoute converts a graph route into its response form.
func NewBusRoute(route buses.Route) BusRoute {
	names := make([]string, 0, len(route.Stops))
	coords := make([][]float64, 0, len(route.Stops))
	for _, stop := range route.Stops {
		names = append(names, stop.Name)
		lat, latErr := strconv.ParseFloat(stop.Latitude, 64)
		lon, lonErr := strconv.ParseFloat(stop.Longitude, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		coords = append(coords, []float64{lat, lon})
	}

	var heading string
	if n := len(route.Stops); n > 1 {
		heading, _ = utils.StopHeading(route.Stops[0], route.Stops[n-1])
	}

	return BusRoute{
		ID:          route.ID,
		Stops:       names,
		TimeOffsets: append([]int(nil), route.TimeOffsets...),
		Heading:     heading,
		Polyline: Polyline{
			Length: len(coords),
			Points: string(polyline.EncodeCoords(coords)),
		},
	}
}

// BusStop is a stop with its English name.
type BusStop struct {
	Name      string `json:"name"`
	NameEN    string `json:"name_en"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

func NewBusStop(stop buses.Stop) BusStop {
	return BusStop{
		Name:      stop.Name,
		NameEN:    stop.NameEN,
		Latitude:  stop.Latitude,
		Longitude: stop.Longitude,
	}
}

// Health is the liveness payload.
type Health struct {
	Status     string `json:"status"`
	CommitHash string `json:"commitHash"`
	Rebuilds   int64  `json:"rebuilds"`
}

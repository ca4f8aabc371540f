package utils

import (
	"math"
	"strconv"

	"nthudata.org/api/internal/buses"
)

var compassPoints = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Bearing returns the initial great-circle bearing in degrees [0, 360) from
// the first point to the second.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(deltaLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLon)

	return math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
}

// CompassPoint maps a bearing onto the 8-point compass rose.
func CompassPoint(bearing float64) string {
	return compassPoints[int((bearing+22.5)/45.0)%len(compassPoints)]
}

// StopHeading is the compass direction from one stop to another. It reports
// false when either stop has unparseable coordinates.
func StopHeading(from, to buses.Stop) (string, bool) {
	lat1, err1 := strconv.ParseFloat(from.Latitude, 64)
	lon1, err2 := strconv.ParseFloat(from.Longitude, 64)
	lat2, err3 := strconv.ParseFloat(to.Latitude, 64)
	lon2, err4 := strconv.ParseFloat(to.Longitude, 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return "", false
	}
	return CompassPoint(Bearing(lat1, lon1, lat2, lon2)), true
}

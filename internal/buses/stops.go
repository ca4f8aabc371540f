package buses

// Stop is a physical bus stop on or around campus.
type Stop struct {
	ID        string `json:"-"`
	Name      string `json:"name"`
	NameEN    string `json:"name_en"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Stop markers used by the resolver when classifying free-text departure stops.
const (
	markerTSMC = "台積"
	markerGate = "校門"
	markerGen2 = "綜二"
)

var stopList = []Stop{
	{ID: "M1", Name: "北校門口", NameEN: "North Main Gate", Latitude: "24.795917", Longitude: "120.996500"},
	{ID: "M2", Name: "綜二館", NameEN: "General Building II", Latitude: "24.794056", Longitude: "120.993428"},
	{ID: "M3", Name: "楓林小徑", NameEN: "Maple Path", Latitude: "24.791776", Longitude: "120.992226"},
	{ID: "M4", Name: "人社院&生科館", NameEN: "Buildings of CHSS and CLS", Latitude: "24.789790", Longitude: "120.990175"},
	{ID: "M5", Name: "台積館", NameEN: "TSMC Building", Latitude: "24.786919", Longitude: "120.988309"},
	{ID: "M6", Name: "奕園停車場", NameEN: "Yi Pavilion Parking Lot", Latitude: "24.788408", Longitude: "120.992636"},
	{ID: "M7", Name: "南門停車場", NameEN: "South Gate Parking Lot", Latitude: "24.786402", Longitude: "120.990860"},
	{ID: "S1", Name: "南大校區校門口右側(食品路校牆邊)", NameEN: "The right side of Nanda Campus front gate (Shipin Road)", Latitude: "24.794260", Longitude: "120.965490"},
}

var stopsByID = func() map[string]Stop {
	m := make(map[string]Stop, len(stopList))
	for _, s := range stopList {
		m[s.ID] = s
	}
	return m
}()

// Stops returns every registered stop in registry order.
func Stops() []Stop {
	out := make([]Stop, len(stopList))
	copy(out, stopList)
	return out
}

// StopByID looks a stop up by its short code.
func StopByID(id string) (Stop, bool) {
	s, ok := stopsByID[id]
	return s, ok
}

// StopByName returns the first stop whose display name equals name.
func StopByName(name string) (Stop, bool) {
	for _, s := range stopList {
		if s.Name == name {
			return s, true
		}
	}
	return Stop{}, false
}

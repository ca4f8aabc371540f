package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"nthudata.org/api/internal/app"
	"nthudata.org/api/internal/buses"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

type WebUI struct {
	*app.Application
}

type debugData struct {
	Title     string
	Commit    string
	Rebuilds  int64
	DataTypes []string
	Pre       string
}

var dataTypes = []string{"info", "stops", "routes", "schedules", "detailed", "payload"}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	page := debugData{
		Title:     title,
		Commit:    webUI.BusManager.LastCommitHash(),
		Rebuilds:  webUI.BusManager.RebuildCount(),
		DataTypes: dataTypes,
		Pre:       dumper.Sdump(data),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := debugTemplate.Execute(w, page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	webUI.BusManager.UpdateData(r.Context())

	manager := webUI.BusManager
	var data interface{}
	var title string

	switch r.URL.Query().Get("dataType") {
	case "info":
		data = manager.RouteInfo(buses.RouteTypeAll, buses.DirectionAll)
		title = "Route Info"
	case "stops":
		data = manager.StopsInfo()
		title = "Stops"
	case "routes":
		data = manager.Routes()
		title = "Route Graph"
	case "schedules":
		data = allBuckets(manager.Schedule)
		title = "Schedules"
	case "detailed":
		data = allBuckets(manager.DetailedSchedule)
		title = "Detailed Schedules"
	case "payload":
		data = string(manager.LastPayload())
		title = "Upstream Payload"
	default:
		data = map[string]string{
			"error": "Please use one of the following: info, stops, routes, schedules, detailed, payload.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, title, data)
}

// allBuckets collects the concrete buckets of one schedule view, keyed
// "route_type/day/direction".
func allBuckets[T any](query func(buses.RouteType, buses.Day, buses.Direction) []T) map[string][]T {
	out := map[string][]T{}
	for _, rt := range []buses.RouteType{buses.RouteTypeMain, buses.RouteTypeNanda} {
		for _, day := range []buses.Day{buses.Weekday, buses.Weekend} {
			for _, dir := range []buses.Direction{buses.DirectionUp, buses.DirectionDown} {
				out[string(rt)+"/"+string(day)+"/"+string(dir)] = query(rt, day, dir)
			}
		}
	}
	return out
}

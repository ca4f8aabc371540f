package restapi

import (
	"net/http"

	"nthudata.org/api/internal/buses"
	"nthudata.org/api/internal/models"
	"nthudata.org/api/internal/utils"
)

func (api *RestAPI) busSchedulesHandler(w http.ResponseWriter, r *http.Request) {
	query, fieldErrors := utils.ParseScheduleQuery(r.URL.Query(), api.clock())
	if fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	api.refresh(w, r)

	if query.Detailed {
		entries := api.BusManager.DetailedSchedule(query.RouteType, query.Day, query.Direction)
		if query.After != "" {
			entries = buses.AfterSpecificTime(entries, query.After, func(e buses.DetailedBusEntry) (string, bool) {
				return e.DepInfo.Time, true
			})
		}
		api.sendResponse(w, r, models.NewListResponse(entries, len(entries)))
		return
	}

	entries := api.BusManager.Schedule(query.RouteType, query.Day, query.Direction)
	if query.After != "" {
		entries = buses.AfterSpecificTime(entries, query.After, func(e buses.BusEntry) (string, bool) {
			return e.Time, true
		})
	}
	api.sendResponse(w, r, models.NewListResponse(entries, len(entries)))
}

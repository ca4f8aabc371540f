package restapi

import (
	"net/http"

	"nthudata.org/api/internal/buses"
	"nthudata.org/api/internal/models"
	"nthudata.org/api/internal/utils"
)

func (api *RestAPI) busStopsHandler(w http.ResponseWriter, r *http.Request) {
	api.refresh(w, r)

	stops := api.BusManager.StopsInfo()
	list := make([]models.BusStop, 0, len(stops))
	for _, stop := range stops {
		list = append(list, models.NewBusStop(stop))
	}
	api.sendResponse(w, r, models.NewListResponse(list, len(list)))
}

func (api *RestAPI) stopSchedulesHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractParam(r, "name")
	if err := utils.ValidateStopName(name); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"name": {err.Error()},
		})
		return
	}

	query, fieldErrors := utils.ParseScheduleQuery(r.URL.Query(), api.clock())
	if fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if _, ok := buses.StopByName(name); !ok {
		api.sendNotFound(w, r)
		return
	}

	api.refresh(w, r)

	records := api.BusManager.StopSchedule(name, query.RouteType, query.Day, query.Direction)
	if query.After != "" {
		records = buses.AfterSpecificTime(records, query.After, func(rec buses.StopScheduleRecord) (string, bool) {
			return rec.ArriveTime, true
		})
	}
	api.sendResponse(w, r, models.NewListResponse(records, len(records)))
}

package restapi

import (
	"net/http"

	"nthudata.org/api/internal/models"
	"nthudata.org/api/internal/utils"
)

func (api *RestAPI) busInfoHandler(w http.ResponseWriter, r *http.Request) {
	query, fieldErrors := utils.ParseScheduleQuery(r.URL.Query(), api.clock())
	if fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	api.refresh(w, r)

	infos := api.BusManager.RouteInfo(query.RouteType, query.Direction)
	api.sendResponse(w, r, models.NewListResponse(infos, len(infos)))
}

package restapi

import (
	"net/http"

	"nthudata.org/api/internal/models"
)

func (api *RestAPI) busRoutesHandler(w http.ResponseWriter, r *http.Request) {
	routes := api.BusManager.Routes()
	list := make([]models.BusRoute, 0, len(routes))
	for _, route := range routes {
		list = append(list, models.NewBusRoute(route))
	}
	api.sendResponse(w, r, models.NewListResponse(list, len(list)))
}

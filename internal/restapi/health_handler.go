package restapi

import (
	"net/http"

	"nthudata.org/api/internal/models"
)

// healthHandler reports liveness without touching the upstream.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status:     "ok",
		CommitHash: api.BusManager.LastCommitHash(),
		Rebuilds:   api.BusManager.RebuildCount(),
	}
	if health.CommitHash == "" {
		health.Status = "starting"
	}
	api.sendResponse(w, r, models.NewEntryResponse(health))
}

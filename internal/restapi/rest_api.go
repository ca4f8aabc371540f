package restapi

import (
	"net/http"
	"time"

	"nthudata.org/api/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
	now         func() time.Time
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
		now:         time.Now,
	}
}

func (api *RestAPI) clock() time.Time {
	if api.now == nil {
		return time.Now()
	}
	return api.now()
}

// refresh brings the bus data up to date and tags the response with the
// commit it was built from.
func (api *RestAPI) refresh(w http.ResponseWriter, r *http.Request) {
	api.BusManager.UpdateData(r.Context())
	if hash := api.BusManager.LastCommitHash(); hash != "" {
		w.Header().Set("X-Data-Commit-Hash", hash)
	}
}

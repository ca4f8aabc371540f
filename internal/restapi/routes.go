package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/buses/info", api.busInfoHandler)
	router.HandlerFunc(http.MethodGet, "/buses/schedules", api.busSchedulesHandler)
	router.HandlerFunc(http.MethodGet, "/buses/stops", api.busStopsHandler)
	router.HandlerFunc(http.MethodGet, "/buses/stops/:name/schedules", api.stopSchedulesHandler)
	router.HandlerFunc(http.MethodGet, "/buses/routes", api.busRoutesHandler)
	router.HandlerFunc(http.MethodGet, "/current-time", api.currentTimeHandler)
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.HandleMethodNotAllowed = false
}

// Handler returns the router wrapped in the middleware chain: security
// headers, request logging, rate limiting, then compression.
func (api *RestAPI) Handler(router *httprouter.Router) http.Handler {
	var handler http.Handler = CompressionMiddleware(router)
	if api.rateLimiter != nil {
		handler = api.rateLimiter(handler)
	}
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return api.WithSecurityHeaders(handler)
}

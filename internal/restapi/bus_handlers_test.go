package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusInfoHandler(t *testing.T) {
	api, fetcher := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/buses/info")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, http.StatusOK, model.Code)
	assert.Equal(t, "OK", model.Text)
	assert.Equal(t, 2, model.Version)
	assert.Equal(t, "abc123", resp.Header.Get("X-Data-Commit-Hash"))
	assert.Len(t, listOf(t, model), 4)
	assert.Equal(t, 1, fetcher.callCount())

	_, model = serveApiAndRetrieveEndpoint(t, api, "/buses/info?route_type=nanda&direction=down")
	list := listOf(t, model)
	require.Len(t, list, 1)
	assert.Equal(t, "往校本部", fieldOf(t, list[0], "direction"))
	assert.Equal(t, "Nanda → Main", fieldOf(t, list[0], "routeEN"))
}

func TestBusSchedulesHandler(t *testing.T) {
	api, _ := createTestApi(t)

	t.Run("bucket query sorted by time", func(t *testing.T) {
		_, model := serveApiAndRetrieveEndpoint(t, api, "/buses/schedules?route_type=main&day=weekday&direction=up")
		list := listOf(t, model)
		require.Len(t, list, 4)
		assert.Equal(t, "07:30", fieldOf(t, list[0], "time"))
		assert.Equal(t, "large-sized_bus", fieldOf(t, list[1], "bus_type"))
		assert.Equal(t, "08:10", fieldOf(t, list[3], "time"))
	})

	t.Run("defaults resolve current day", func(t *testing.T) {
		_, model := serveApiAndRetrieveEndpoint(t, api, "/buses/schedules")
		assert.Len(t, listOf(t, model), 10)
	})

	t.Run("after filter drops earlier and unparseable times", func(t *testing.T) {
		_, model := serveApiAndRetrieveEndpoint(t, api, "/buses/schedules?route_type=main&day=weekday&direction=down&after=08:30")
		list := listOf(t, model)
		require.Len(t, list, 1)
		assert.Equal(t, "09:00", fieldOf(t, list[0], "time"))
	})

	t.Run("after now uses the request clock", func(t *testing.T) {
		_, model := serveApiAndRetrieveEndpoint(t, api, "/buses/schedules?route_type=main&day=weekday&direction=up&after=now")
		list := listOf(t, model)
		require.Len(t, list, 1)
		assert.Equal(t, "08:10", fieldOf(t, list[0], "time"))
	})

	t.Run("detailed entries carry stop times", func(t *testing.T) {
		_, model := serveApiAndRetrieveEndpoint(t, api, "/buses/schedules?route_type=main&day=weekday&direction=up&detailed=true&after=07:50")
		list := listOf(t, model)
		require.Len(t, list, 2)

		depInfo, ok := fieldOf(t, list[0], "dep_info").(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "07:53", depInfo["time"])
		assert.Equal(t, "red_M2_M5", fieldOf(t, list[0], "route_id"))

		stops, ok := fieldOf(t, list[0], "stops_time").([]interface{})
		require.True(t, ok)
		require.Len(t, stops, 4)
		assert.Equal(t, "綜二館", fieldOf(t, stops[0], "stop"))
		assert.Equal(t, "07:58", fieldOf(t, stops[3], "arrive_time"))
	})

	t.Run("weekend bucket", func(t *testing.T) {
		_, model := serveApiAndRetrieveEndpoint(t, api, "/buses/schedules?route_type=nanda&day=weekend&direction=up")
		list := listOf(t, model)
		require.Len(t, list, 1)
		assert.Equal(t, "route_83", fieldOf(t, list[0], "bus_type"))
	})
}

func TestBusSchedulesHandlerValidation(t *testing.T) {
	api, fetcher := createTestApi(t)
	router := httprouter.New()
	api.SetRoutes(router)

	query := url.Values{"route_type": {"tram"}, "after": {"25:00"}}
	req := httptest.NewRequest(http.MethodGet, "/buses/schedules?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Code        int                 `json:"code"`
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Contains(t, body.FieldErrors, "route_type")
	assert.Contains(t, body.FieldErrors, "after")
	assert.Zero(t, fetcher.callCount(), "invalid requests never reach the upstream")
}

func TestBusStopsHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/buses/stops")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list := listOf(t, model)
	require.Len(t, list, 8)
	assert.Equal(t, "北校門口", fieldOf(t, list[0], "name"))
	assert.Equal(t, "North Main Gate", fieldOf(t, list[0], "name_en"))
	assert.Equal(t, "24.795917", fieldOf(t, list[0], "latitude"))
}

func TestStopSchedulesHandler(t *testing.T) {
	api, _ := createTestApi(t)

	t.Run("arrivals at a stop", func(t *testing.T) {
		endpoint := "/buses/stops/" + url.PathEscape("綜二館") + "/schedules?route_type=main&day=weekday&direction=up"
		resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		list := listOf(t, model)
		require.Len(t, list, 4)
		assert.Equal(t, "07:31", fieldOf(t, list[0], "arrive_time"))
		assert.Equal(t, "07:30", fieldOf(t, list[0], "dep_time"))
		assert.Equal(t, "08:11", fieldOf(t, list[3], "arrive_time"))
	})

	t.Run("after filter on arrival time", func(t *testing.T) {
		endpoint := "/buses/stops/" + url.PathEscape("綜二館") + "/schedules?route_type=main&day=weekday&direction=up&after=07:50"
		_, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
		list := listOf(t, model)
		require.Len(t, list, 2)
		assert.Equal(t, "07:53", fieldOf(t, list[0], "arrive_time"))
	})

	t.Run("nanda buses call at the stop too", func(t *testing.T) {
		endpoint := "/buses/stops/" + url.PathEscape("綜二館") + "/schedules?day=weekday&direction=up"
		_, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
		assert.Len(t, listOf(t, model), 6)
	})

	t.Run("unknown stop", func(t *testing.T) {
		resp, model := serveApiAndRetrieveEndpoint(t, api, "/buses/stops/"+url.PathEscape("不存在")+"/schedules")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "resource not found", model.Text)
		assert.Nil(t, model.Data)
	})

	t.Run("invalid stop name", func(t *testing.T) {
		resp, _ := serveApiAndRetrieveEndpoint(t, api, "/buses/stops/"+url.PathEscape("a--b")+"/schedules")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestBusRoutesHandler(t *testing.T) {
	api, fetcher := createTestApi(t)

	_, model := serveApiAndRetrieveEndpoint(t, api, "/buses/routes")
	list := listOf(t, model)
	require.Len(t, list, 12)
	assert.Equal(t, "red_M1_M5", fieldOf(t, list[0], "id"))
	assert.Equal(t, "SW", fieldOf(t, list[0], "heading"))

	polyline, ok := fieldOf(t, list[0], "polyline").(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(5), polyline["length"])
	assert.NotEmpty(t, polyline["points"])
	assert.Zero(t, fetcher.callCount(), "the route graph is static")
}

func TestHealthHandler(t *testing.T) {
	api, _ := createTestApi(t)

	_, model := serveApiAndRetrieveEndpoint(t, api, "/healthz")
	entry := model.Data.(map[string]interface{})["entry"]
	assert.Equal(t, "starting", fieldOf(t, entry, "status"))

	serveApiAndRetrieveEndpoint(t, api, "/buses/info")

	_, model = serveApiAndRetrieveEndpoint(t, api, "/healthz")
	entry = model.Data.(map[string]interface{})["entry"]
	assert.Equal(t, "ok", fieldOf(t, entry, "status"))
	assert.Equal(t, "abc123", fieldOf(t, entry, "commitHash"))
	assert.Equal(t, float64(1), fieldOf(t, entry, "rebuilds"))
}

func TestHandlersServeStaleDataWhenUpstreamFails(t *testing.T) {
	api, fetcher := createTestApi(t)

	_, model := serveApiAndRetrieveEndpoint(t, api, "/buses/schedules?route_type=main&day=weekday&direction=up")
	require.Len(t, listOf(t, model), 4)

	fetcher.mu.Lock()
	fetcher.err = errors.New("upstream down")
	fetcher.mu.Unlock()

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/buses/schedules?route_type=main&day=weekday&direction=up")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc123", resp.Header.Get("X-Data-Commit-Hash"))
	assert.Len(t, listOf(t, model), 4)
}

func TestUnknownRoute(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/buses/trains")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)
}

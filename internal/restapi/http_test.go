package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"nthudata.org/api/internal/app"
	"nthudata.org/api/internal/appconf"
	"nthudata.org/api/internal/buses"
	"nthudata.org/api/internal/logging"
	"nthudata.org/api/internal/models"
	"nthudata.org/api/internal/nthudata"
)

// stubFetcher serves a fixed bus payload.
type stubFetcher struct {
	mu    sync.Mutex
	snap  *nthudata.Snapshot
	err   error
	calls int
}

func (f *stubFetcher) Get(_ context.Context, key string) (*nthudata.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if key != buses.PayloadKey {
		return nil, nthudata.ErrNotFound
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testPayload(t *testing.T) json.RawMessage {
	t.Helper()
	row := func(clock, line, depStop, description string) map[string]string {
		return map[string]string{"time": clock, "line": line, "dep_stop": depStop, "description": description}
	}
	payload := map[string]any{
		"towardTSMCBuildingInfo": map[string]string{"direction": "往台積館", "duration": "07:30-22:00", "route": "北校門口 → 台積館", "routeEN": "Main Gate → TSMC"},
		"towardMainGateInfo":     map[string]string{"direction": "往北校門", "duration": "07:40-22:10", "route": "台積館 → 北校門口", "routeEN": "TSMC → Main Gate"},
		"towardNandaInfo":        map[string]string{"direction": "往南大", "duration": "07:00-21:00", "route": "校本部 → 南大", "routeEN": "Main → Nanda"},
		"towardMainCampusInfo":   map[string]string{"direction": "往校本部", "duration": "07:30-21:30", "route": "南大 → 校本部", "routeEN": "Nanda → Main"},
		"weekdayBusScheduleTowardTSMCBuilding": []map[string]string{
			row("08:10", "green", "北校門口", ""),
			row("07:30", "red", "北校門口", ""),
			row("07:53", "red", "綜二館", ""),
			row("07:45", "red", "北校門口", "大型巴士"),
		},
		"weekdayBusScheduleTowardMainGate": []map[string]string{
			row("8:00", "red", "台積館", ""),
			row("09:00", "red", "台積館", ""),
			row("??", "green", "台積館", ""),
		},
		"weekdayBusScheduleTowardNanda": []map[string]string{
			{"time": "07:40", "description": "一般路線"},
			{"time": "09:10", "description": "路線二經過教育學院"},
		},
		"weekdayBusScheduleTowardMainCampus": []map[string]string{
			{"time": "08:20", "description": ""},
		},
		"weekendBusScheduleTowardNanda": []map[string]string{
			{"time": "09:30", "description": "83"},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return body
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mondayMorning is 2026-10-19 08:00 in Taipei.
var mondayMorning = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

// createTestApi creates a RestAPI backed by a stub upstream holding the test payload.
func createTestApi(t *testing.T) (*RestAPI, *stubFetcher) {
	t.Helper()
	fetcher := &stubFetcher{snap: &nthudata.Snapshot{CommitHash: "abc123", Payload: testPayload(t)}}
	logger := quietLogger()

	application := &app.Application{
		Config:     appconf.Default(),
		Logger:     logger,
		BusManager: buses.NewManager(fetcher, logger),
	}
	application.Config.Env = appconf.Test

	api := &RestAPI{
		Application: application,
		now:         func() time.Time { return mondayMorning },
	}
	return api, fetcher
}

// serveApiAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	t.Helper()
	api, _ := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

// listOf extracts data.list from a decoded response.
func listOf(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "data.list should be an array")
	require.Equal(t, float64(len(list)), data["limitCount"])
	return list
}

func fieldOf(t *testing.T, item interface{}, key string) interface{} {
	t.Helper()
	obj, ok := item.(map[string]interface{})
	require.True(t, ok)
	return obj[key]
}

package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"
	"github.com/lintang-b-s/skyroute/pkg/graph"
	"github.com/lintang-b-s/skyroute/pkg/ingest"
	"github.com/lintang-b-s/skyroute/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*chi.Mux, *Metrics) {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := service.NewFlightService(graph.NewStore(), slog.New(slog.NewTextHandler(io.Discard, nil)), service.NewMetrics(reg))
	svc.Rebuild(ingest.Dataset{
		Airports: []datastructure.Airport{
			datastructure.NewAirport(1, "IST", "Istanbul Airport", "Istanbul", "Turkey", 41.27, 28.75),
			datastructure.NewAirport(2, "KBP", "Boryspil International", "Kyiv", "Ukraine", 50.34, 30.89),
			datastructure.NewAirport(3, "WAW", "Warsaw Chopin", "Warsaw", "Poland", 52.17, 20.97),
			datastructure.NewAirport(4, "PVG", "Shanghai Pudong", "Shanghai", "China", 31.14, 121.81),
			datastructure.NewAirport(5, "VVO", "Vladivostok International", "Vladivostok", "Russia", 43.40, 132.15),
		},
		Routes: []datastructure.Route{
			datastructure.NewRoute("IST", "KBP", "TK", datastructure.NewMoneyFromFloat(120), 130),
			datastructure.NewRoute("IST", "WAW", "TK", datastructure.NewMoneyFromFloat(150), 170),
			datastructure.NewRoute("WAW", "KBP", "LO", datastructure.NewMoneyFromFloat(90), 95),
		},
		Zones: ingest.DefaultZones(),
	})

	m := NewMetrics(reg)
	r := chi.NewRouter()
	r.Use(PromeHttpMiddleware(m))
	FlightRouter(r, svc)
	return r, m
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type searchBody struct {
	Success       bool    `json:"success"`
	TotalPrice    float64 `json:"totalPrice"`
	TotalDuration int64   `json:"totalDuration"`
	TotalStops    int     `json:"totalStops"`
	Reason        string  `json:"reason"`
	Message       string  `json:"message"`
	Polyline      string  `json:"polyline"`
	Segments      []struct {
		SourceCode string `json:"sourceCode"`
		DestCode   string `json:"destCode"`
	} `json:"segments"`
}

func TestSearchFlightsHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		name       string
		target     string
		wantStatus int
		wantReason string
	}{
		{"found", "/api/flights/search?source=ist&destination=KBP&criteria=cheapest", http.StatusOK, "None"},
		{"numeric criteria", "/api/flights/search?source=IST&destination=KBP&criteria=1", http.StatusOK, "None"},
		{"default criteria", "/api/flights/search?source=IST&destination=KBP", http.StatusOK, "None"},
		{"zone block", "/api/flights/search?source=PVG&destination=VVO", http.StatusConflict, "RestrictedZoneBlock"},
		{"no route", "/api/flights/search?source=KBP&destination=WAW", http.StatusNotFound, "NoRoute"},
		{"unknown airport", "/api/flights/search?source=XXX&destination=WAW", http.StatusNotFound, "NoRoute"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doGet(t, r, tc.target)
			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())

			var body searchBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantReason, body.Reason)
			assert.Equal(t, tc.wantStatus == http.StatusOK, body.Success)
			assert.NotNil(t, body.Segments)
		})
	}

	rec := doGet(t, r, "/api/flights/search?source=IST&destination=KBP&criteria=cheapest")
	var body searchBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Segments, 2)
	assert.Equal(t, "IST", body.Segments[0].SourceCode)
	assert.Equal(t, "KBP", body.Segments[1].DestCode)
	assert.Equal(t, 240.0, body.TotalPrice)
	assert.Equal(t, int64(265), body.TotalDuration)
	assert.Equal(t, 1, body.TotalStops)
	assert.NotEmpty(t, body.Polyline)
}

func TestSearchFlightsHandlerBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, target := range []string{
		"/api/flights/search?destination=KBP",
		"/api/flights/search?source=IST",
		"/api/flights/search?source=IST&destination=KBP&criteria=scenic",
	} {
		rec := doGet(t, r, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)

		var errResp ErrResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "Invalid request.", errResp.StatusText)
	}

	rec := doGet(t, r, "/api/flights/search?destination=KBP")
	var errResp ErrResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.ErrValidation, "source is a required field")
}

func TestSearchAirportsHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/api/airports/search", "/api/flights/search-airports"} {
		rec := doGet(t, r, path+"?query=international")
		require.Equal(t, http.StatusOK, rec.Code)

		var airports []datastructure.Airport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &airports))
		require.Len(t, airports, 2)
		assert.Equal(t, "KBP", airports[0].Code)

		rec = doGet(t, r, path+"?query=k")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestAirportsAndZonesHandlers(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doGet(t, r, "/api/flights/airports")
	require.Equal(t, http.StatusOK, rec.Code)
	var airports []datastructure.Airport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &airports))
	assert.Len(t, airports, 5)

	rec = doGet(t, r, "/api/flights/restricted-zones")
	require.Equal(t, http.StatusOK, rec.Code)
	var zones []RestrictedZoneResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &zones))
	require.Len(t, zones, 2)
	assert.Equal(t, "War Zone A", zones[0].Name)
	// [lat, lon]
	assert.Equal(t, [2]float64{45, 30}, zones[0].Coordinates[0])
}

func TestNearbyAirportsHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doGet(t, r, "/api/airports/nearby?lat=41&lon=29&radius=100&k=3")
	require.Equal(t, http.StatusOK, rec.Code)
	var nearby []struct {
		Airport    datastructure.Airport `json:"airport"`
		DistanceKm float64               `json:"distanceKm"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nearby))
	require.Len(t, nearby, 1)
	assert.Equal(t, "IST", nearby[0].Airport.Code)

	assert.Equal(t, http.StatusBadRequest, doGet(t, r, "/api/airports/nearby?lat=abc&lon=29").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, r, "/api/airports/nearby?lat=95&lon=29").Code)
}

func TestStatsHandlerAndMetrics(t *testing.T) {
	r, m := newTestRouter(t)

	rec := doGet(t, r, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats service.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 5, stats.Airports)
	assert.Equal(t, 2, stats.Routes)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/stats", http.MethodGet, "200")))
}

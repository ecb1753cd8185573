package rest

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"
	"github.com/lintang-b-s/skyroute/pkg/geo"
	"github.com/lintang-b-s/skyroute/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type FlightService interface {
	SearchFlights(ctx context.Context, source, dest string, criterion datastructure.Criterion) (datastructure.PathResult, error)
	SearchAirports(ctx context.Context, query string, limit int) ([]datastructure.Airport, error)
	Airports(ctx context.Context) []datastructure.Airport
	RestrictedZones(ctx context.Context) []datastructure.RestrictedZone
	NearbyAirports(ctx context.Context, lat, lon, radiusKm float64, k int) ([]geo.NearbyAirport, error)
	Stats(ctx context.Context) service.Stats
}

type FlightHandler struct {
	svc      FlightService
	validate *validator.Validate
	trans    ut.Translator
}

func FlightRouter(r *chi.Mux, svc FlightService) {
	handler := NewFlightHandler(svc)

	r.Group(func(r chi.Router) {
		r.Route("/api/flights", func(r chi.Router) {
			r.Get("/search", handler.SearchFlights)
			r.Get("/search-airports", handler.SearchAirports)
			r.Get("/airports", handler.Airports)
			r.Get("/restricted-zones", handler.RestrictedZones)
		})
		r.Route("/api/airports", func(r chi.Router) {
			r.Get("/search", handler.SearchAirports)
			r.Get("/nearby", handler.NearbyAirports)
		})
		r.Get("/api/stats", handler.Stats)
	})
}

func NewFlightHandler(svc FlightService) *FlightHandler {
	validate := validator.New()
	// report query parameter names instead of struct field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &FlightHandler{svc: svc, validate: validate, trans: trans}
}

func (h *FlightHandler) validateRequest(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	if err := h.validate.Struct(data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return false
	}
	return true
}

// SearchFlightsRequest model info
//
//	@Description	query parameter pencarian rute penerbangan
type SearchFlightsRequest struct {
	Source      string `query:"source" validate:"required,max=8"`
	Destination string `query:"destination" validate:"required,max=8"`
	Criteria    string `query:"criteria"`
}

func (s *SearchFlightsRequest) Bind(r *http.Request) error {
	q := r.URL.Query()
	s.Source = strings.TrimSpace(q.Get("source"))
	s.Destination = strings.TrimSpace(q.Get("destination"))
	s.Criteria = strings.TrimSpace(q.Get("criteria"))
	return nil
}

// SearchFlightsResponse model info
//
//	@Description	hasil pencarian rute. polyline berisi encoded path antar bandara
type SearchFlightsResponse struct {
	datastructure.PathResult
	Polyline string `json:"polyline,omitempty"`
}

func RenderSearchFlightsResponse(res datastructure.PathResult) *SearchFlightsResponse {
	resp := &SearchFlightsResponse{PathResult: res}
	if res.Success && len(res.Segments) > 0 {
		resp.Polyline = datastructure.CreatePolyline(res.Coordinates())
	}
	return resp
}

// SearchFlights
//
//	@Summary		cari rute penerbangan optimal yang tidak melewati restricted zone
//	@Description	cari rute penerbangan optimal (cheapest, fastest, layover) antara dua bandara. Rute yang melewati restricted zone tidak pernah dipakai.
//	@Tags			flights
//	@Param			source		query	string	true	"kode IATA bandara asal"
//	@Param			destination	query	string	true	"kode IATA bandara tujuan"
//	@Param			criteria	query	string	false	"cheapest | fastest | layover (default cheapest)"
//	@Produce		application/json
//	@Router			/flights/search [get]
//	@Success		200	{object}	SearchFlightsResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	SearchFlightsResponse
//	@Failure		409	{object}	SearchFlightsResponse
//	@Failure		500	{object}	ErrResponse
func (h *FlightHandler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	data := &SearchFlightsRequest{}
	if err := data.Bind(r); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	criterion := datastructure.Cheapest
	if data.Criteria != "" {
		var err error
		criterion, err = datastructure.ParseCriterion(data.Criteria)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}
	}

	res, err := h.svc.SearchFlights(r.Context(), data.Source, data.Destination, criterion)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}

	status := http.StatusOK
	switch res.Reason {
	case datastructure.RestrictedZoneBlock:
		status = http.StatusConflict
	case datastructure.NoRoute:
		status = http.StatusNotFound
	}

	render.Status(r, status)
	render.JSON(w, r, RenderSearchFlightsResponse(res))
}

// SearchAirportsRequest model info
//
//	@Description	query parameter pencarian bandara
type SearchAirportsRequest struct {
	Query string `query:"query" validate:"required,min=2"`
	Limit int    `query:"limit" validate:"gte=0,lte=10"`
}

func (s *SearchAirportsRequest) Bind(r *http.Request) error {
	q := r.URL.Query()
	s.Query = strings.TrimSpace(q.Get("query"))
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return errors.New("limit must be an integer")
		}
		s.Limit = n
	}
	return nil
}

// SearchAirports
//
//	@Summary		cari bandara berdasarkan kode IATA, nama, atau kota
//	@Description	cari bandara (case-insensitive), minimal 2 karakter, maksimal 10 hasil
//	@Tags			airports
//	@Param			query	query	string	true	"kata kunci"
//	@Param			limit	query	int		false	"jumlah hasil maksimal (<= 10)"
//	@Produce		application/json
//	@Router			/airports/search [get]
//	@Success		200	{array}		datastructure.Airport
//	@Failure		400	{object}	ErrResponse
func (h *FlightHandler) SearchAirports(w http.ResponseWriter, r *http.Request) {
	data := &SearchAirportsRequest{}
	if err := data.Bind(r); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	airports, err := h.svc.SearchAirports(r.Context(), data.Query, data.Limit)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, airports)
}

// Airports
//
//	@Summary		semua bandara di graph snapshot saat ini
//	@Tags			flights
//	@Produce		application/json
//	@Router			/flights/airports [get]
//	@Success		200	{array}	datastructure.Airport
func (h *FlightHandler) Airports(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.svc.Airports(r.Context()))
}

// RestrictedZoneResponse model info
//
//	@Description	restricted zone, coordinates berupa pasangan [lat, lon]
type RestrictedZoneResponse struct {
	Name        string       `json:"name"`
	Coordinates [][2]float64 `json:"coordinates"`
}

func RenderRestrictedZonesResponse(zones []datastructure.RestrictedZone) []RestrictedZoneResponse {
	resp := make([]RestrictedZoneResponse, 0, len(zones))
	for _, z := range zones {
		resp = append(resp, RestrictedZoneResponse{
			Name:        z.Name,
			Coordinates: z.LatLonPairs(),
		})
	}
	return resp
}

// RestrictedZones
//
//	@Summary		semua restricted zone
//	@Tags			flights
//	@Produce		application/json
//	@Router			/flights/restricted-zones [get]
//	@Success		200	{array}	RestrictedZoneResponse
func (h *FlightHandler) RestrictedZones(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRestrictedZonesResponse(h.svc.RestrictedZones(r.Context())))
}

// NearbyAirportsRequest model info
//
//	@Description	query parameter pencarian bandara terdekat
type NearbyAirportsRequest struct {
	Lat    float64 `query:"lat" validate:"gte=-90,lte=90"`
	Lon    float64 `query:"lon" validate:"gte=-180,lte=180"`
	Radius float64 `query:"radius" validate:"gt=0,lte=2000"`
	K      int     `query:"k" validate:"gte=0,lte=100"`
}

func (s *NearbyAirportsRequest) Bind(r *http.Request) error {
	q := r.URL.Query()
	var err error
	if s.Lat, err = strconv.ParseFloat(q.Get("lat"), 64); err != nil {
		return errors.New("lat must be a number")
	}
	if s.Lon, err = strconv.ParseFloat(q.Get("lon"), 64); err != nil {
		return errors.New("lon must be a number")
	}
	s.Radius = 100
	if radius := q.Get("radius"); radius != "" {
		if s.Radius, err = strconv.ParseFloat(radius, 64); err != nil {
			return errors.New("radius must be a number")
		}
	}
	s.K = 10
	if k := q.Get("k"); k != "" {
		if s.K, err = strconv.Atoi(k); err != nil {
			return errors.New("k must be an integer")
		}
	}
	return nil
}

// NearbyAirports
//
//	@Summary		bandara terdekat dari sebuah koordinat
//	@Description	bandara dalam radius (km) dari koordinat, diurutkan dari yang terdekat. Pakai h3 grid disk.
//	@Tags			airports
//	@Param			lat		query	number	true	"latitude"
//	@Param			lon		query	number	true	"longitude"
//	@Param			radius	query	number	false	"radius km (default 100)"
//	@Param			k		query	int		false	"jumlah hasil maksimal (default 10)"
//	@Produce		application/json
//	@Router			/airports/nearby [get]
//	@Success		200	{array}		geo.NearbyAirport
//	@Failure		400	{object}	ErrResponse
func (h *FlightHandler) NearbyAirports(w http.ResponseWriter, r *http.Request) {
	data := &NearbyAirportsRequest{}
	if err := data.Bind(r); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	airports, err := h.svc.NearbyAirports(r.Context(), data.Lat, data.Lon, data.Radius, data.K)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, airports)
}

// Stats
//
//	@Summary		statistik graph snapshot saat ini
//	@Tags			stats
//	@Produce		application/json
//	@Router			/stats [get]
//	@Success		200	{object}	service.Stats
func (h *FlightHandler) Stats(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.svc.Stats(r.Context()))
}

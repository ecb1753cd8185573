package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"
	"github.com/lintang-b-s/skyroute/pkg/geo"
	"github.com/lintang-b-s/skyroute/pkg/util"

	"golang.org/x/exp/rand"
)

// OpenFlights airports.dat columns
const (
	airportColID      = 0
	airportColName    = 1
	airportColCity    = 2
	airportColCountry = 3
	airportColIATA    = 4
	airportColLat     = 6
	airportColLon     = 7

	airportMinCols = 8
)

// OpenFlights routes.dat columns
const (
	routeColAirline = 0
	routeColSource  = 2
	routeColDest    = 4
	routeColStops   = 7

	routeMinCols = 8
)

const nullField = `\N`

// Synth turns a great-circle distance into the duration and price a route
// record does not carry.
type Synth struct {
	Seed        uint64
	CruiseKmh   float64
	TaxiMinutes float64
	PricePerKm  float64
}

func DefaultSynth() Synth {
	return Synth{
		Seed:        42,
		CruiseKmh:   900,
		TaxiMinutes: 45,
		PricePerKm:  0.12,
	}
}

func (s Synth) DurationMinutes(distKm float64) int64 {
	return int64(math.Round(distKm/s.CruiseKmh*60 + s.TaxiMinutes))
}

// Price applies a variance in [0.8, 1.2) drawn from rd.
func (s Synth) Price(distKm float64, rd *rand.Rand) datastructure.Money {
	variance := 0.8 + rd.Float64()*0.4
	return datastructure.NewMoneyFromFloat(util.RoundFloat(distKm*s.PricePerKm*variance, 2))
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

// readRecords calls fn for every well-formed csv record. malformed lines are skipped.
func readRecords(r io.Reader, fn func(record []string)) error {
	cr := newCSVReader(r)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return err
		}
		fn(record)
	}
}

func clean(s string) string {
	return strings.Trim(s, "\" \t")
}

// ParseAirports reads an OpenFlights airports.dat stream. Rows without a 3
// letter IATA code or with unparsable coordinates are skipped; on duplicate
// codes the first row wins.
func ParseAirports(r io.Reader) ([]datastructure.Airport, error) {
	airports := []datastructure.Airport{}
	seen := make(map[string]struct{})

	err := readRecords(r, func(record []string) {
		if len(record) < airportMinCols {
			return
		}
		iata := clean(record[airportColIATA])
		if len(iata) != 3 || iata == nullField {
			return
		}
		iata = datastructure.NormalizeCode(iata)
		if _, ok := seen[iata]; ok {
			return
		}

		lat, err := strconv.ParseFloat(clean(record[airportColLat]), 64)
		if err != nil || lat < -90 || lat > 90 {
			return
		}
		lon, err := strconv.ParseFloat(clean(record[airportColLon]), 64)
		if err != nil || lon < -180 || lon > 180 {
			return
		}

		id, err := strconv.ParseInt(clean(record[airportColID]), 10, 32)
		if err != nil {
			id = 0
		}

		seen[iata] = struct{}{}
		airports = append(airports, datastructure.NewAirport(int32(id), iata, clean(record[airportColName]),
			clean(record[airportColCity]), clean(record[airportColCountry]), lat, lon))
	})
	if err != nil {
		return nil, fmt.Errorf("parse airports: %w", err)
	}
	return airports, nil
}

// ParseRoutes reads an OpenFlights routes.dat stream, keeping only nonstop
// routes whose endpoints are both in airports.
func ParseRoutes(r io.Reader, airports []datastructure.Airport, synth Synth) ([]datastructure.Route, error) {
	byCode := make(map[string]datastructure.Airport, len(airports))
	for _, a := range airports {
		if _, ok := byCode[a.Code]; !ok {
			byCode[a.Code] = a
		}
	}

	rd := rand.New(rand.NewSource(synth.Seed))
	routes := []datastructure.Route{}

	err := readRecords(r, func(record []string) {
		if len(record) < routeMinCols {
			return
		}
		if clean(record[routeColStops]) != "0" {
			return
		}
		src, ok := byCode[datastructure.NormalizeCode(clean(record[routeColSource]))]
		if !ok {
			return
		}
		dst, ok := byCode[datastructure.NormalizeCode(clean(record[routeColDest]))]
		if !ok {
			return
		}

		distKm := geo.GreatCircleDistanceKM(src.Lat, src.Lon, dst.Lat, dst.Lon)
		route := datastructure.NewRoute(src.Code, dst.Code, clean(record[routeColAirline]),
			synth.Price(distKm, rd), synth.DurationMinutes(distKm))
		route.SourceID = src.ID
		route.DestID = dst.ID
		routes = append(routes, route)
	})
	if err != nil {
		return nil, fmt.Errorf("parse routes: %w", err)
	}
	return routes, nil
}

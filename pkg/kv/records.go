package kv

import (
	"github.com/lintang-b-s/skyroute/pkg/datastructure"

	"github.com/paulmach/orb"
)

// on-disk record shapes, kept apart from the domain types so the domain can
// change without breaking stored snapshots.

type kvAirport struct {
	ID      int32
	Code    string
	Name    string
	City    string
	Country string
	Lat     float64
	Lon     float64
}

type kvRoute struct {
	SourceCode      string
	DestCode        string
	SourceID        int32
	DestID          int32
	Airline         string
	Stops           int32
	PriceCents      int64
	DurationMinutes int64
}

type kvZone struct {
	Name string
	Lons []float64
	Lats []float64
}

type kvMeta struct {
	Version     string
	SavedAtUnix int64
	Airports    int32
	Routes      int32
	Zones       int32
}

func toKVAirport(a datastructure.Airport) kvAirport {
	return kvAirport{
		ID:      a.ID,
		Code:    a.Code,
		Name:    a.Name,
		City:    a.City,
		Country: a.Country,
		Lat:     a.Lat,
		Lon:     a.Lon,
	}
}

func (a kvAirport) toAirport() datastructure.Airport {
	return datastructure.NewAirport(a.ID, a.Code, a.Name, a.City, a.Country, a.Lat, a.Lon)
}

func toKVRoute(r datastructure.Route) kvRoute {
	return kvRoute{
		SourceCode:      r.SourceCode,
		DestCode:        r.DestCode,
		SourceID:        r.SourceID,
		DestID:          r.DestID,
		Airline:         r.Airline,
		Stops:           int32(r.Stops),
		PriceCents:      r.Price.Cents(),
		DurationMinutes: r.DurationMinutes,
	}
}

func (r kvRoute) toRoute() datastructure.Route {
	return datastructure.Route{
		SourceCode:      r.SourceCode,
		DestCode:        r.DestCode,
		SourceID:        r.SourceID,
		DestID:          r.DestID,
		Airline:         r.Airline,
		Stops:           int(r.Stops),
		Price:           datastructure.Money(r.PriceCents),
		DurationMinutes: r.DurationMinutes,
	}
}

func toKVZone(z datastructure.RestrictedZone) kvZone {
	lons := make([]float64, len(z.Ring))
	lats := make([]float64, len(z.Ring))
	for i, p := range z.Ring {
		lons[i] = p.Lon()
		lats[i] = p.Lat()
	}
	return kvZone{Name: z.Name, Lons: lons, Lats: lats}
}

func (z kvZone) toZone() datastructure.RestrictedZone {
	ring := make(orb.Ring, len(z.Lons))
	for i := range z.Lons {
		ring[i] = orb.Point{z.Lons[i], z.Lats[i]}
	}
	return datastructure.NewRestrictedZone(z.Name, ring)
}

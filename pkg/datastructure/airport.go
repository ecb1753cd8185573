package datastructure

import "strings"

// Airport is a node of the flight graph. Code is the 3 letter IATA code,
// always stored upper-case.
type Airport struct {
	ID      int32   `json:"-"`
	Code    string  `json:"iataCode"`
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"latitude"`
	Lon     float64 `json:"longitude"`
}

func NewAirport(id int32, code, name, city, country string, lat, lon float64) Airport {
	return Airport{
		ID:      id,
		Code:    NormalizeCode(code),
		Name:    name,
		City:    city,
		Country: country,
		Lat:     lat,
		Lon:     lon,
	}
}

// NormalizeCode makes airport codes comparable case-insensitively.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (a Airport) Coordinate() Coordinate {
	return NewCoordinate(a.Lat, a.Lon)
}

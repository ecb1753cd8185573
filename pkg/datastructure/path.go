package datastructure

import (
	"fmt"
	"strings"
)

// Criterion selects which edge attribute a path search minimises.
type Criterion int

const (
	Cheapest Criterion = iota
	Fastest
	Layover
)

var criterionNames = [...]string{"Cheapest", "Fastest", "Layover"}

func (c Criterion) String() string {
	if c < Cheapest || c > Layover {
		return fmt.Sprintf("Criterion(%d)", int(c))
	}
	return criterionNames[c]
}

// ParseCriterion accepts the criterion name in any case or its numeric value.
func ParseCriterion(s string) (Criterion, error) {
	s = strings.TrimSpace(s)
	for i, name := range criterionNames {
		if strings.EqualFold(s, name) || s == fmt.Sprint(i) {
			return Criterion(i), nil
		}
	}
	return Cheapest, fmt.Errorf("unknown criterion %q, want one of cheapest, fastest, layover", s)
}

func (c Criterion) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Criterion) UnmarshalText(b []byte) error {
	parsed, err := ParseCriterion(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FailureReason tells why a path query did not produce a path.
type FailureReason int

const (
	None FailureReason = iota
	NoRoute
	RestrictedZoneBlock
)

func (f FailureReason) String() string {
	switch f {
	case NoRoute:
		return "NoRoute"
	case RestrictedZoneBlock:
		return "RestrictedZoneBlock"
	default:
		return "None"
	}
}

func (f FailureReason) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// FlightSegment is one flown edge of a path, carrying both airports'
// display attributes so the result can be rendered on its own.
type FlightSegment struct {
	SourceCode      string  `json:"sourceCode"`
	SourceName      string  `json:"sourceName"`
	SourceCountry   string  `json:"sourceCountry"`
	SourceLatitude  float64 `json:"sourceLatitude"`
	SourceLongitude float64 `json:"sourceLongitude"`

	DestCode      string  `json:"destCode"`
	DestName      string  `json:"destName"`
	DestCountry   string  `json:"destCountry"`
	DestLatitude  float64 `json:"destLatitude"`
	DestLongitude float64 `json:"destLongitude"`

	Airline         string `json:"airline"`
	Price           Money  `json:"price"`
	DurationMinutes int64  `json:"durationMinutes"`
}

func NewFlightSegment(e Edge) FlightSegment {
	return FlightSegment{
		SourceCode:      e.From.Code,
		SourceName:      e.From.Name,
		SourceCountry:   e.From.Country,
		SourceLatitude:  e.From.Lat,
		SourceLongitude: e.From.Lon,
		DestCode:        e.To.Code,
		DestName:        e.To.Name,
		DestCountry:     e.To.Country,
		DestLatitude:    e.To.Lat,
		DestLongitude:   e.To.Lon,
		Airline:         e.Airline,
		Price:           e.Price,
		DurationMinutes: e.DurationMinutes,
	}
}

// PathResult is the outcome of one path query: either a path with its
// totals, or a failure reason with a message.
type PathResult struct {
	Success       bool            `json:"success"`
	Segments      []FlightSegment `json:"segments"`
	TotalPrice    Money           `json:"totalPrice"`
	TotalDuration int64           `json:"totalDuration"`
	TotalStops    int             `json:"totalStops"`
	Reason        FailureReason   `json:"reason"`
	Message       string          `json:"message,omitempty"`
}

// NewPathResult denormalises a path into segments and sums its totals.
// An empty path is a successful zero-cost result.
func NewPathResult(edges []Edge) PathResult {
	res := PathResult{
		Success:  true,
		Segments: make([]FlightSegment, 0, len(edges)),
		Reason:   None,
	}
	for _, e := range edges {
		res.Segments = append(res.Segments, NewFlightSegment(e))
		res.TotalPrice += e.Price
		res.TotalDuration += e.DurationMinutes
	}
	if len(edges) > 1 {
		res.TotalStops = len(edges) - 1
	}
	return res
}

func NewFailedPathResult(reason FailureReason, message string) PathResult {
	return PathResult{
		Segments: []FlightSegment{},
		Reason:   reason,
		Message:  message,
	}
}

// Coordinates returns the airports visited by the path in order.
func (p PathResult) Coordinates() []Coordinate {
	if len(p.Segments) == 0 {
		return []Coordinate{}
	}
	coords := make([]Coordinate, 0, len(p.Segments)+1)
	coords = append(coords, NewCoordinate(p.Segments[0].SourceLatitude, p.Segments[0].SourceLongitude))
	for _, s := range p.Segments {
		coords = append(coords, NewCoordinate(s.DestLatitude, s.DestLongitude))
	}
	return coords
}

// Route returns the visited airport codes in order.
func (p PathResult) Route() []string {
	if len(p.Segments) == 0 {
		return []string{}
	}
	codes := make([]string, 0, len(p.Segments)+1)
	codes = append(codes, p.Segments[0].SourceCode)
	for _, s := range p.Segments {
		codes = append(codes, s.DestCode)
	}
	return codes
}

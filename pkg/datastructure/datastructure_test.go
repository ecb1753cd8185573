package datastructure

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	m := NewMoneyFromFloat(123.456)
	assert.Equal(t, Money(12346), m)
	assert.Equal(t, "123.46", m.String())
	assert.Equal(t, "-0.05", Money(-5).String())

	// 0.1 + 0.2 drifts in float64, not in cents
	sum := NewMoneyFromFloat(0.1) + NewMoneyFromFloat(0.2)
	assert.Equal(t, NewMoneyFromFloat(0.3), sum)

	b, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{Price: 15000})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":150.00}`, string(b))

	var decoded struct {
		Price Money `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":99.9}`), &decoded))
	assert.Equal(t, Money(9990), decoded.Price)
}

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		in      string
		want    Criterion
		wantErr bool
	}{
		{"cheapest", Cheapest, false},
		{"FASTEST", Fastest, false},
		{"Layover", Layover, false},
		{"2", Layover, false},
		{" 1 ", Fastest, false},
		{"shortest", Cheapest, true},
		{"", Cheapest, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCriterion(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "CGK", NormalizeCode(" cgk "))
	assert.Equal(t, "CGK", NewAirport(1, "cGk", "Soekarno-Hatta", "Jakarta", "Indonesia", -6.12, 106.65).Code)
}

func TestNewRestrictedZoneClosesRing(t *testing.T) {
	zone := NewRestrictedZone("open", orb.Ring{{0, 0}, {1, 0}, {1, 1}})
	assert.Len(t, zone.Ring, 4)
	assert.Equal(t, zone.Ring[0], zone.Ring[3])

	closed := NewRestrictedZone("closed", orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}})
	assert.Len(t, closed.Ring, 4)

	pairs := closed.LatLonPairs()
	assert.Equal(t, [2]float64{0, 1}, pairs[1]) // lat 0, lon 1
}

func TestPathResultRouteAndPolyline(t *testing.T) {
	a := NewAirport(1, "AAA", "A", "A", "X", 1, 1)
	b := NewAirport(2, "BBB", "B", "B", "X", 2, 2)
	c := NewAirport(3, "CCC", "C", "C", "X", 3, 3)
	res := PathResult{
		Success: true,
		Segments: []FlightSegment{
			NewFlightSegment(Edge{From: a, To: b}),
			NewFlightSegment(Edge{From: b, To: c}),
		},
	}

	assert.Equal(t, []string{"AAA", "BBB", "CCC"}, res.Route())
	coords := res.Coordinates()
	require.Len(t, coords, 3)
	assert.Equal(t, 3.0, coords[2].Lat)
	assert.NotEmpty(t, CreatePolyline(coords))

	failed := NewFailedPathResult(NoRoute, "No route found.")
	assert.Empty(t, failed.Route())
	b2, err := json.Marshal(failed)
	require.NoError(t, err)
	assert.Contains(t, string(b2), `"reason":"NoRoute"`)
	assert.Contains(t, string(b2), `"segments":[]`)
}

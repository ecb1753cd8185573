package ingest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"
	"github.com/lintang-b-s/skyroute/pkg/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const airportsDat = `2,"Soekarno-Hatta International Airport","Jakarta","Indonesia","CGK","WIII",-6.1255698204,106.65599823,34,7,"N","Asia/Jakarta","airport","OurAirports"
3,"Singapore Changi Airport","Singapore","Singapore","SIN","WSSS",1.35019,103.994003,22,8,"N","Asia/Singapore","airport","OurAirports"
4,"Some Field","Nowhere","Nowhere",\N,"XXXX",1,1,0,0,"N","","airport","OurAirports"
5,"Bad Latitude","Bad","Bad","BAD","BBBB",abc,1,0,0,"N","","airport","OurAirports"
6,"Duplicate","Jakarta","Indonesia","CGK","WIII",0,0,0,0,"N","","airport","OurAirports"
7,"Short","X"
8,"Ngurah Rai International Airport","Denpasar","Indonesia","dps","WADD",-8.7481698989868,115.16699981689,14,8,"N","Asia/Makassar","airport","OurAirports"
9,"Four Letter","x","y","ABCD","",1,1,0,0,"N","","airport","OurAirports"
`

const routesDat = `GA,1,CGK,2,SIN,3,,0,738
SQ,4,SIN,3,CGK,2,,0,738
GA,1,CGK,2,DPS,8,Y,1,738
GA,1,CGK,2,XXX,99,,0,738
GA,1,CGK,2,DPS,8,,0,738
GA,1,CGK
`

const zonesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Alpha"},
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[10,10],[11,10],[11,11],[10,10]]],
        [[[20,20],[21,20],[21,21],[20,20]]]
      ]}
    },
    {
      "type": "Feature",
      "properties": {"name": "just a point"},
      "geometry": {"type": "Point", "coordinates": [5,5]}
    }
  ]
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func codes(airports []datastructure.Airport) []string {
	out := []string{}
	for _, a := range airports {
		out = append(out, a.Code)
	}
	return out
}

func TestParseAirports(t *testing.T) {
	airports, err := ParseAirports(strings.NewReader(airportsDat))
	require.NoError(t, err)

	assert.Equal(t, []string{"CGK", "SIN", "DPS"}, codes(airports))

	cgk := airports[0]
	assert.Equal(t, int32(2), cgk.ID)
	assert.Equal(t, "Soekarno-Hatta International Airport", cgk.Name)
	assert.Equal(t, "Jakarta", cgk.City)
	assert.Equal(t, "Indonesia", cgk.Country)
	assert.InDelta(t, -6.12557, cgk.Lat, 1e-5)
	assert.InDelta(t, 106.656, cgk.Lon, 1e-3)
}

func TestParseRoutes(t *testing.T) {
	airports, err := ParseAirports(strings.NewReader(airportsDat))
	require.NoError(t, err)

	synth := DefaultSynth()
	routes, err := ParseRoutes(strings.NewReader(routesDat), airports, synth)
	require.NoError(t, err)
	require.Len(t, routes, 3)

	assert.Equal(t, "CGK", routes[0].SourceCode)
	assert.Equal(t, "SIN", routes[0].DestCode)
	assert.Equal(t, int32(2), routes[0].SourceID)
	assert.Equal(t, int32(3), routes[0].DestID)
	assert.Equal(t, "GA", routes[0].Airline)
	assert.Equal(t, "SQ", routes[1].Airline)
	assert.Equal(t, "DPS", routes[2].DestCode)

	cgk, sin := airports[0], airports[1]
	dist := geo.GreatCircleDistanceKM(cgk.Lat, cgk.Lon, sin.Lat, sin.Lon)
	assert.Equal(t, synth.DurationMinutes(dist), routes[0].DurationMinutes)
	assert.GreaterOrEqual(t, routes[0].Price.Float64(), dist*0.12*0.8-0.01)
	assert.Less(t, routes[0].Price.Float64(), dist*0.12*1.2+0.01)

	again, err := ParseRoutes(strings.NewReader(routesDat), airports, synth)
	require.NoError(t, err)
	assert.Equal(t, routes, again, "same seed, same prices")
}

func TestSynth(t *testing.T) {
	s := DefaultSynth()
	// 900 km at 900 km/h plus 45 minutes taxi
	assert.Equal(t, int64(105), s.DurationMinutes(900))
	assert.Equal(t, int64(45), s.DurationMinutes(0))
}

func TestParseZones(t *testing.T) {
	zones, err := ParseZones(strings.NewReader(zonesGeoJSON))
	require.NoError(t, err)
	require.Len(t, zones, 3)

	assert.Equal(t, "Alpha", zones[0].Name)
	assert.Equal(t, "zone-2", zones[1].Name)
	assert.Equal(t, "zone-3", zones[2].Name)
	assert.Len(t, zones[0].Ring, 5)

	_, err = ParseZones(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestDefaultZones(t *testing.T) {
	zones := DefaultZones()
	require.Len(t, zones, 2)
	assert.Equal(t, "War Zone A", zones[0].Name)
	assert.Equal(t, "No Fly Zone B", zones[1].Name)

	kiev := datastructure.NewAirport(0, "KBP", "", "", "", 50.34, 30.89)
	istanbul := datastructure.NewAirport(0, "IST", "", "", "", 41.27, 28.75)
	odesa := datastructure.NewAirport(0, "ODS", "", "", "", 46.42, 30.68)
	assert.False(t, geo.IsAdmissible(kiev, istanbul, zones), "crosses War Zone A")
	assert.False(t, geo.IsAdmissible(odesa, istanbul, zones), "starts inside War Zone A")
	assert.True(t, geo.IsAdmissible(istanbul, datastructure.NewAirport(0, "ATH", "", "", "", 37.94, 23.94), zones))
}

func writeSources(t *testing.T, dir string) Sources {
	t.Helper()
	src := Sources{
		AirportsFile: filepath.Join(dir, "airports.dat"),
		RoutesFile:   filepath.Join(dir, "routes.dat"),
	}
	require.NoError(t, os.WriteFile(src.AirportsFile, []byte(airportsDat), 0644))
	require.NoError(t, os.WriteFile(src.RoutesFile, []byte(routesDat), 0644))
	return src
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	src := writeSources(t, dir)

	ds, err := LoadDataset(context.Background(), src, DefaultSynth(), discardLogger())
	require.NoError(t, err)
	assert.Len(t, ds.Airports, 3)
	assert.Len(t, ds.Routes, 3)
	assert.Equal(t, DefaultZones(), ds.Zones)

	src.ZonesFile = filepath.Join(dir, "zones.geojson")
	require.NoError(t, os.WriteFile(src.ZonesFile, []byte(zonesGeoJSON), 0644))
	ds, err = LoadDataset(context.Background(), src, DefaultSynth(), discardLogger())
	require.NoError(t, err)
	assert.Len(t, ds.Zones, 3)
}

func TestLoadDatasetMissingRoutes(t *testing.T) {
	dir := t.TempDir()
	src := writeSources(t, dir)
	src.RoutesFile = filepath.Join(dir, "nope.dat")

	ds, err := LoadDataset(context.Background(), src, DefaultSynth(), discardLogger())
	require.NoError(t, err)
	assert.Len(t, ds.Airports, 3)
	assert.Empty(t, ds.Routes)
}

func TestLoadDatasetErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDataset(context.Background(), Sources{}, DefaultSynth(), discardLogger())
	assert.ErrorIs(t, err, ErrNoAirports)

	_, err = LoadDataset(context.Background(), Sources{AirportsFile: filepath.Join(dir, "missing.dat")},
		DefaultSynth(), discardLogger())
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.dat")
	require.NoError(t, os.WriteFile(empty, []byte("1,\"x\"\n"), 0644))
	_, err = LoadDataset(context.Background(), Sources{AirportsFile: empty}, DefaultSynth(), discardLogger())
	assert.ErrorIs(t, err, ErrNoAirports)
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	src := writeSources(t, dir)

	reloaded := make(chan Dataset, 4)
	w, err := NewWatcher(src, DefaultSynth(), discardLogger(), func(ds Dataset) {
		reloaded <- ds
	})
	require.NoError(t, err)
	defer w.Stop()
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	extra := `10,"Changi Satellite","Singapore","Singapore","XSP","WSSL",1.4169,103.8676,0,8,"N","","airport","OurAirports"` + "\n"
	require.NoError(t, os.WriteFile(src.AirportsFile, []byte(airportsDat+extra), 0644))

	select {
	case ds := <-reloaded:
		assert.Len(t, ds.Airports, 4)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload")
	}
}

package kv

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"
	"github.com/lintang-b-s/skyroute/pkg/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *KVDB {
	t.Helper()
	db, err := Open(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadDatasetEmpty(t *testing.T) {
	db := openTestDB(t)

	_, _, err := db.LoadDataset(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	_, err = db.Meta()
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSaveLoadDataset(t *testing.T) {
	db := openTestDB(t)

	cgk := datastructure.NewAirport(2, "CGK", "Soekarno-Hatta", "Jakarta", "Indonesia", -6.1256, 106.6558)
	sin := datastructure.NewAirport(3, "SIN", "Changi", "Singapore", "Singapore", 1.3502, 103.994)
	route := datastructure.NewRoute("CGK", "SIN", "GA", datastructure.NewMoneyFromFloat(101.25), 104)
	route.SourceID, route.DestID = 2, 3

	ds := ingest.Dataset{
		Airports: []datastructure.Airport{cgk, sin},
		Routes:   []datastructure.Route{route},
		Zones:    ingest.DefaultZones(),
	}

	meta, err := db.SaveDataset(context.Background(), ds)
	require.NoError(t, err)
	assert.NotEmpty(t, meta.Version)
	assert.Equal(t, 2, meta.Airports)
	assert.Equal(t, 1, meta.Routes)
	assert.Equal(t, 2, meta.Zones)

	got, gotMeta, err := db.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, meta.Version, gotMeta.Version)
	assert.Equal(t, ds.Airports, got.Airports)
	assert.Equal(t, ds.Routes, got.Routes)
	assert.Equal(t, ds.Zones, got.Zones)

	// a second save replaces the first
	ds.Routes = []datastructure.Route{}
	meta2, err := db.SaveDataset(context.Background(), ds)
	require.NoError(t, err)
	assert.NotEqual(t, meta.Version, meta2.Version)

	got, _, err = db.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Routes)
}

func TestEncodeDecode(t *testing.T) {
	zones := []kvZone{{Name: "z", Lons: []float64{1, 2, 3, 1}, Lats: []float64{4, 5, 6, 4}}}
	bb, err := encode(zones)
	require.NoError(t, err)

	got, err := decode[kvZone](bb)
	require.NoError(t, err)
	assert.Equal(t, zones, got)

	_, err = decode[kvZone]([]byte("not zstd"))
	assert.Error(t, err)
}

package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"
	"github.com/lintang-b-s/skyroute/pkg/ingest"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

var (
	ErrSnapshotNotFound = errors.New("record snapshot not found")
)

const (
	keyMeta     = "skyroute:meta"
	keyAirports = "skyroute:airports"
	keyRoutes   = "skyroute:routes"
	keyZones    = "skyroute:zones"
)

// KVDB persists the raw record set (airports, routes, zones) so a server can
// start without the source files.
type KVDB struct {
	db  *badger.DB
	log *slog.Logger
}

func NewKVDB(db *badger.DB, log *slog.Logger) *KVDB {
	return &KVDB{db: db, log: log}
}

// Open opens (or creates) a badger database in dir.
func Open(dir string, log *slog.Logger) (*KVDB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %s: %w", dir, err)
	}
	return NewKVDB(db, log), nil
}

// SnapshotMeta describes the last saved record snapshot.
type SnapshotMeta struct {
	Version  string    `json:"version"`
	SavedAt  time.Time `json:"savedAt"`
	Airports int       `json:"airports"`
	Routes   int       `json:"routes"`
	Zones    int       `json:"zones"`
}

type batchData struct {
	key   string
	value []byte
}

// SaveDataset replaces the stored snapshot. All keys are written in one batch.
func (k *KVDB) SaveDataset(ctx context.Context, ds ingest.Dataset) (SnapshotMeta, error) {
	airports := make([]kvAirport, len(ds.Airports))
	for i, a := range ds.Airports {
		airports[i] = toKVAirport(a)
	}
	routes := make([]kvRoute, len(ds.Routes))
	for i, r := range ds.Routes {
		routes[i] = toKVRoute(r)
	}
	zones := make([]kvZone, len(ds.Zones))
	for i, z := range ds.Zones {
		zones[i] = toKVZone(z)
	}

	meta := kvMeta{
		Version:     uuid.NewString(),
		SavedAtUnix: time.Now().Unix(),
		Airports:    int32(len(airports)),
		Routes:      int32(len(routes)),
		Zones:       int32(len(zones)),
	}

	batches := make([]batchData, 0, 4)
	for _, item := range []struct {
		key    string
		encode func() ([]byte, error)
	}{
		{keyAirports, func() ([]byte, error) { return encode(airports) }},
		{keyRoutes, func() ([]byte, error) { return encode(routes) }},
		{keyZones, func() ([]byte, error) { return encode(zones) }},
		{keyMeta, func() ([]byte, error) { return encode([]kvMeta{meta}) }},
	} {
		val, err := item.encode()
		if err != nil {
			return SnapshotMeta{}, fmt.Errorf("encode %s: %w", item.key, err)
		}
		batches = append(batches, batchData{key: item.key, value: val})
	}

	if err := k.saveBatch(ctx, batches); err != nil {
		return SnapshotMeta{}, err
	}

	k.log.Info("record snapshot saved",
		slog.String("version", meta.Version),
		slog.Int("airports", len(airports)),
		slog.Int("routes", len(routes)),
		slog.Int("zones", len(zones)))
	return meta.toSnapshotMeta(), nil
}

func (k *KVDB) saveBatch(ctx context.Context, batchData []batchData) error {
	batch := k.db.NewWriteBatch()
	defer batch.Cancel()

	for _, data := range batchData {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := batch.Set([]byte(data.key), data.value); err != nil {
			return err
		}
	}

	if err := batch.Flush(); err != nil {
		return fmt.Errorf("flush record snapshot: %w", err)
	}
	return nil
}

// LoadDataset reads the stored snapshot back, or returns ErrSnapshotNotFound.
func (k *KVDB) LoadDataset(ctx context.Context) (ingest.Dataset, SnapshotMeta, error) {
	meta, err := k.Meta()
	if err != nil {
		return ingest.Dataset{}, SnapshotMeta{}, err
	}

	ds := ingest.Dataset{
		Airports: []datastructure.Airport{},
		Routes:   []datastructure.Route{},
		Zones:    []datastructure.RestrictedZone{},
	}

	airports, err := getRecords[kvAirport](k, keyAirports)
	if err != nil {
		return ingest.Dataset{}, SnapshotMeta{}, err
	}
	for _, a := range airports {
		ds.Airports = append(ds.Airports, a.toAirport())
	}

	if err := ctx.Err(); err != nil {
		return ingest.Dataset{}, SnapshotMeta{}, err
	}

	routes, err := getRecords[kvRoute](k, keyRoutes)
	if err != nil {
		return ingest.Dataset{}, SnapshotMeta{}, err
	}
	for _, r := range routes {
		ds.Routes = append(ds.Routes, r.toRoute())
	}

	zones, err := getRecords[kvZone](k, keyZones)
	if err != nil {
		return ingest.Dataset{}, SnapshotMeta{}, err
	}
	for _, z := range zones {
		ds.Zones = append(ds.Zones, z.toZone())
	}

	return ds, meta, nil
}

func (k *KVDB) Meta() (SnapshotMeta, error) {
	metas, err := getRecords[kvMeta](k, keyMeta)
	if err != nil {
		return SnapshotMeta{}, err
	}
	if len(metas) == 0 {
		return SnapshotMeta{}, ErrSnapshotNotFound
	}
	return metas[0].toSnapshotMeta(), nil
}

func (m kvMeta) toSnapshotMeta() SnapshotMeta {
	return SnapshotMeta{
		Version:  m.Version,
		SavedAt:  time.Unix(m.SavedAtUnix, 0),
		Airports: int(m.Airports),
		Routes:   int(m.Routes),
		Zones:    int(m.Zones),
	}
}

func getRecords[T any](k *KVDB, key string) ([]T, error) {
	val, err := k.get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	records, err := decode[T](val)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return records, nil
}

func (k *KVDB) get(key []byte) ([]byte, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		if err != nil {
			return err
		}

		return nil
	})
	return val, err
}

func (k *KVDB) Close() error {
	return k.db.Close()
}

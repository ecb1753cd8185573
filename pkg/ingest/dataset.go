package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"

	"golang.org/x/sync/errgroup"
)

var ErrNoAirports = errors.New("no airports loaded")

// Dataset is the raw record set a graph snapshot is built from.
type Dataset struct {
	Airports []datastructure.Airport
	Routes   []datastructure.Route
	Zones    []datastructure.RestrictedZone
}

type Sources struct {
	AirportsFile string
	RoutesFile   string
	// empty means DefaultZones
	ZonesFile string
}

// LoadDataset reads the source files concurrently. The airports file is
// mandatory, a missing routes file yields a graph without edges.
func LoadDataset(ctx context.Context, src Sources, synth Synth, log *slog.Logger) (Dataset, error) {
	var (
		ds          Dataset
		routesBytes []byte
	)

	if src.AirportsFile == "" {
		return Dataset{}, ErrNoAirports
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := os.Open(src.AirportsFile)
		if err != nil {
			return fmt.Errorf("open airports file: %w", err)
		}
		defer f.Close()
		ds.Airports, err = ParseAirports(f)
		return err
	})

	g.Go(func() error {
		if src.RoutesFile == "" {
			return nil
		}
		var err error
		routesBytes, err = os.ReadFile(src.RoutesFile)
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("routes file not found", slog.String("path", src.RoutesFile))
			return nil
		}
		if err != nil {
			return fmt.Errorf("read routes file: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if src.ZonesFile == "" {
			ds.Zones = DefaultZones()
			return nil
		}
		f, err := os.Open(src.ZonesFile)
		if err != nil {
			return fmt.Errorf("open zones file: %w", err)
		}
		defer f.Close()
		ds.Zones, err = ParseZones(f)
		return err
	})

	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	if len(ds.Airports) == 0 {
		return Dataset{}, ErrNoAirports
	}

	ds.Routes = []datastructure.Route{}
	if routesBytes != nil {
		var err error
		ds.Routes, err = ParseRoutes(bytes.NewReader(routesBytes), ds.Airports, synth)
		if err != nil {
			return Dataset{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}

	log.Info("dataset loaded",
		slog.Int("airports", len(ds.Airports)),
		slog.Int("routes", len(ds.Routes)),
		slog.Int("zones", len(ds.Zones)))
	return ds, nil
}

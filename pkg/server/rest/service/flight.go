package service

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"
	"github.com/lintang-b-s/skyroute/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/skyroute/pkg/geo"
	"github.com/lintang-b-s/skyroute/pkg/graph"
	"github.com/lintang-b-s/skyroute/pkg/ingest"
	"github.com/lintang-b-s/skyroute/pkg/server"
	"github.com/lintang-b-s/skyroute/pkg/util"
)

const (
	minAirportQueryLen = 2
	maxAirportResults  = 10
)

type Stats struct {
	Version  string           `json:"version"`
	Airports int              `json:"airports"`
	Routes   int              `json:"routes"`
	Zones    int              `json:"zones"`
	BuiltAt  time.Time        `json:"builtAt"`
	Build    graph.BuildStats `json:"build"`
}

type buildInfo struct {
	airportIndex *geo.AirportIndex
	stats        graph.BuildStats
	builtAt      time.Time
}

type FlightService struct {
	store   GraphStore
	info    atomic.Pointer[buildInfo]
	log     *slog.Logger
	metrics *Metrics
}

func NewFlightService(store GraphStore, log *slog.Logger, metrics *Metrics) *FlightService {
	svc := &FlightService{
		store:   store,
		log:     log,
		metrics: metrics,
	}
	svc.info.Store(&buildInfo{airportIndex: geo.NewAirportIndex(nil)})
	return svc
}

// Rebuild publishes a new graph snapshot built from ds. Queries running
// concurrently keep the snapshot they started with.
func (uc *FlightService) Rebuild(ds ingest.Dataset) graph.BuildStats {
	start := time.Now()
	stats := uc.store.Initialize(ds.Airports, ds.Routes, ds.Zones)
	g := uc.store.Current()

	uc.info.Store(&buildInfo{
		airportIndex: geo.NewAirportIndex(g.AllNodes()),
		stats:        stats,
		builtAt:      time.Now(),
	})

	if uc.metrics != nil {
		uc.metrics.airports.Set(float64(g.NumNodes()))
		uc.metrics.routes.Set(float64(g.NumEdges()))
		uc.metrics.zones.Set(float64(len(g.AllZones())))
		uc.metrics.rebuilds.Inc()
	}

	uc.log.Info("graph snapshot published",
		slog.String("version", g.Version()),
		slog.Int("airports", stats.Airports),
		slog.Int("duplicate_airports", stats.DuplicateAirports),
		slog.Int("routes", stats.Routes),
		slog.Int("dangling_routes", stats.DanglingRoutes),
		slog.Int("blocked_routes", stats.BlockedRoutes),
		slog.Int("admissible_routes", stats.AdmissibleRoutes),
		slog.Int("zones", stats.Zones),
		slog.Duration("took", time.Since(start)))
	return stats
}

// SearchFlights finds the optimal path under criterion. A query that finds no
// path is not an error, the reason is in the result.
func (uc *FlightService) SearchFlights(ctx context.Context, source, dest string,
	criterion datastructure.Criterion) (datastructure.PathResult, error) {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return datastructure.PathResult{}, server.NewErrorf(server.ErrBadParamInput, "source and destination are required")
	}

	g := uc.store.Current()
	rt := routingalgorithm.NewRouteAlgorithm(g)

	res, err := rt.FindPathContext(ctx, source, dest, criterion)
	if err != nil {
		return datastructure.PathResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	outcome := "success"
	if !res.Success {
		outcome = res.Reason.String()
	}
	if uc.metrics != nil {
		uc.metrics.pathQueries.WithLabelValues(criterion.String(), outcome).Inc()
	}

	if res.Reason == datastructure.RestrictedZoneBlock {
		from, _ := g.GetNode(source)
		to, _ := g.GetNode(dest)
		if zone, ok := g.BlockingZone(from, to); ok {
			uc.log.Debug("direct segment blocked", slog.String("source", from.Code),
				slog.String("destination", to.Code), slog.String("zone", zone.Name))
		}
	}
	uc.log.Debug("path query",
		slog.String("source", source),
		slog.String("destination", dest),
		slog.String("criterion", criterion.String()),
		slog.String("outcome", outcome),
		slog.Int("segments", len(res.Segments)))

	return res, nil
}

// SearchAirports matches query against code, name and city, case-insensitive.
// Results are sorted by code and capped at 10.
func (uc *FlightService) SearchAirports(ctx context.Context, query string, limit int) ([]datastructure.Airport, error) {
	query = strings.TrimSpace(query)
	if len(query) < minAirportQueryLen {
		return nil, server.NewErrorf(server.ErrBadParamInput, "query must be at least %d characters", minAirportQueryLen)
	}
	if limit <= 0 || limit > maxAirportResults {
		limit = maxAirportResults
	}

	result := []datastructure.Airport{}
	for _, a := range uc.store.Current().AllNodes() {
		if util.ContainsFold(a.Code, query) || util.ContainsFold(a.Name, query) || util.ContainsFold(a.City, query) {
			result = append(result, a)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (uc *FlightService) Airports(ctx context.Context) []datastructure.Airport {
	return uc.store.Current().AllNodes()
}

func (uc *FlightService) RestrictedZones(ctx context.Context) []datastructure.RestrictedZone {
	return uc.store.Current().AllZones()
}

func (uc *FlightService) NearbyAirports(ctx context.Context, lat, lon, radiusKm float64, k int) ([]geo.NearbyAirport, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, server.NewErrorf(server.ErrBadParamInput, "coordinate out of range")
	}
	if radiusKm <= 0 {
		return nil, server.NewErrorf(server.ErrBadParamInput, "radius must be positive")
	}
	return uc.info.Load().airportIndex.Nearby(lat, lon, radiusKm, k), nil
}

func (uc *FlightService) Stats(ctx context.Context) Stats {
	g := uc.store.Current()
	info := uc.info.Load()
	return Stats{
		Version:  g.Version(),
		Airports: g.NumNodes(),
		Routes:   g.NumEdges(),
		Zones:    len(g.AllZones()),
		BuiltAt:  info.builtAt,
		Build:    info.stats,
	}
}

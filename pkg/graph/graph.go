package graph

import (
	"runtime"
	"sort"

	"github.com/lintang-b-s/skyroute/pkg/concurrent"
	"github.com/lintang-b-s/skyroute/pkg/datastructure"
	"github.com/lintang-b-s/skyroute/pkg/geo"

	"github.com/google/uuid"
)

// Graph is an immutable flight network snapshot. Every edge it holds has
// already passed the restricted zone filter, so the search never sees a
// blocked route. Safe for concurrent readers.
type Graph struct {
	version   string
	nodes     map[string]datastructure.Airport
	sorted    []datastructure.Airport
	adjacency map[string][]datastructure.Edge
	numEdges  int
	zones     []datastructure.RestrictedZone
	zoneIndex *geo.ZoneIndex
}

// BuildStats counts what Build kept and dropped.
type BuildStats struct {
	Airports          int `json:"airports"`
	DuplicateAirports int `json:"duplicateAirports"`
	Routes            int `json:"routes"`
	DanglingRoutes    int `json:"danglingRoutes"`
	BlockedRoutes     int `json:"blockedRoutes"`
	AdmissibleRoutes  int `json:"admissibleRoutes"`
	Zones             int `json:"zones"`
}

// Empty returns a graph without nodes; every query against it fails with NoRoute.
func Empty() *Graph {
	g, _ := Build(nil, nil, nil)
	return g
}

type segmentPair struct {
	from, to string
}

type resolvedRoute struct {
	from, to datastructure.Airport
	pairID   int
	route    datastructure.Route
}

// Build constructs a snapshot from raw records. Duplicate airport codes keep
// the first occurrence, routes with an unknown endpoint are dropped, and
// routes whose straight segment enters a zone are dropped.
func Build(airports []datastructure.Airport, routes []datastructure.Route,
	zones []datastructure.RestrictedZone) (*Graph, BuildStats) {
	stats := BuildStats{Routes: len(routes), Zones: len(zones)}

	g := &Graph{
		version:   uuid.NewString(),
		nodes:     make(map[string]datastructure.Airport, len(airports)),
		adjacency: make(map[string][]datastructure.Edge),
		zones:     zones,
		zoneIndex: geo.NewZoneIndex(zones),
	}

	byID := make(map[int32]string, len(airports))
	for _, a := range airports {
		a.Code = datastructure.NormalizeCode(a.Code)
		if a.Code == "" {
			continue
		}
		if _, ok := g.nodes[a.Code]; ok {
			stats.DuplicateAirports++
			continue
		}
		g.nodes[a.Code] = a
		g.sorted = append(g.sorted, a)
		if a.ID != 0 {
			if _, ok := byID[a.ID]; !ok {
				byID[a.ID] = a.Code
			}
		}
	}
	sort.Slice(g.sorted, func(i, j int) bool {
		return g.sorted[i].Code < g.sorted[j].Code
	})
	stats.Airports = len(g.nodes)

	pairIDs := make(map[segmentPair]int)
	pairs := []segmentPair{}
	resolved := make([]resolvedRoute, 0, len(routes))
	for _, r := range routes {
		from, okFrom := g.resolve(r.SourceCode, r.SourceID, byID)
		to, okTo := g.resolve(r.DestCode, r.DestID, byID)
		if !okFrom || !okTo {
			stats.DanglingRoutes++
			continue
		}

		key := segmentPair{from.Code, to.Code}
		pairID, ok := pairIDs[key]
		if !ok {
			pairID = len(pairs)
			pairIDs[key] = pairID
			pairs = append(pairs, key)
		}
		resolved = append(resolved, resolvedRoute{from: from, to: to, pairID: pairID, route: r})
	}

	admissible := g.admissiblePairs(pairs)

	for _, rr := range resolved {
		if !admissible[rr.pairID] {
			stats.BlockedRoutes++
			continue
		}
		edge := datastructure.Edge{
			From:            rr.from,
			To:              rr.to,
			Airline:         rr.route.Airline,
			Price:           rr.route.Price,
			DurationMinutes: rr.route.DurationMinutes,
		}
		g.adjacency[rr.from.Code] = append(g.adjacency[rr.from.Code], edge)
		g.numEdges++
	}
	stats.AdmissibleRoutes = g.numEdges

	return g, stats
}

func (g *Graph) resolve(code string, id int32, byID map[int32]string) (datastructure.Airport, bool) {
	if a, ok := g.nodes[datastructure.NormalizeCode(code)]; ok {
		return a, true
	}
	if id == 0 {
		return datastructure.Airport{}, false
	}
	byIDCode, ok := byID[id]
	if !ok {
		return datastructure.Airport{}, false
	}
	return g.nodes[byIDCode], true
}

// admissiblePairs checks every distinct segment once, fanned out over a worker pool.
func (g *Graph) admissiblePairs(pairs []segmentPair) []bool {
	admissible := make([]bool, len(pairs))
	if len(g.zones) == 0 {
		for i := range admissible {
			admissible[i] = true
		}
		return admissible
	}

	workers := concurrent.NewWorkerPool[concurrent.SegmentJobItem, concurrent.SegmentVerdict](runtime.NumCPU(),
		len(pairs))
	for i, p := range pairs {
		workers.AddJob(concurrent.NewSegmentJobItem(i, g.nodes[p.from], g.nodes[p.to]))
	}
	workers.Close()
	workers.Start(func(job concurrent.SegmentJobItem) concurrent.SegmentVerdict {
		return concurrent.SegmentVerdict{
			PairID:     job.PairID,
			Admissible: g.zoneIndex.IsAdmissible(job.From, job.To),
		}
	})
	workers.Wait()

	for verdict := range workers.CollectResults() {
		admissible[verdict.PairID] = verdict.Admissible
	}
	return admissible
}

func (g *Graph) GetNode(code string) (datastructure.Airport, bool) {
	a, ok := g.nodes[datastructure.NormalizeCode(code)]
	return a, ok
}

// OutgoingEdges returns the admissible edges leaving code, in input order.
// callers must not modify the returned slice.
func (g *Graph) OutgoingEdges(code string) []datastructure.Edge {
	return g.adjacency[datastructure.NormalizeCode(code)]
}

// AllNodes returns the airports sorted by code.
func (g *Graph) AllNodes() []datastructure.Airport {
	return g.sorted
}

func (g *Graph) AllZones() []datastructure.RestrictedZone {
	return g.zones
}

func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumEdges() int {
	return g.numEdges
}

func (g *Graph) Version() string {
	return g.version
}

// IsAdmissible tests the direct segment between two airports against the zones
// this snapshot was built with.
func (g *Graph) IsAdmissible(a, b datastructure.Airport) bool {
	return g.zoneIndex.IsAdmissible(a, b)
}

// BlockingZone names the first zone the direct segment enters.
func (g *Graph) BlockingZone(a, b datastructure.Airport) (datastructure.RestrictedZone, bool) {
	return g.zoneIndex.BlockingZone(a, b)
}

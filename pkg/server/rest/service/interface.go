package service

import (
	"github.com/lintang-b-s/skyroute/pkg/datastructure"
	"github.com/lintang-b-s/skyroute/pkg/graph"
)

// GraphStore publishes immutable graph snapshots.
type GraphStore interface {
	Initialize(airports []datastructure.Airport, routes []datastructure.Route,
		zones []datastructure.RestrictedZone) graph.BuildStats
	Current() *graph.Graph
}

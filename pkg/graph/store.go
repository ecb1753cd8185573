package graph

import (
	"sync/atomic"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"
)

// Store holds the current snapshot. Initialize builds a new graph off to the
// side and publishes it in one atomic swap, so a query sees either the old
// snapshot or the new one, never a partial build.
type Store struct {
	current atomic.Pointer[Graph]
}

func NewStore() *Store {
	s := &Store{}
	s.current.Store(Empty())
	return s
}

func (s *Store) Initialize(airports []datastructure.Airport, routes []datastructure.Route,
	zones []datastructure.RestrictedZone) BuildStats {
	g, stats := Build(airports, routes, zones)
	s.current.Store(g)
	return stats
}

// Current returns the published snapshot. A query should call it once and use
// the returned graph for its whole lifetime.
func (s *Store) Current() *Graph {
	g := s.current.Load()
	if g == nil {
		return Empty()
	}
	return g
}

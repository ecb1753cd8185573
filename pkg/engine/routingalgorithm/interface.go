package routingalgorithm

import "github.com/lintang-b-s/skyroute/pkg/datastructure"

// FlightGraph is the read-only view of a graph snapshot the search needs.
type FlightGraph interface {
	GetNode(code string) (datastructure.Airport, bool)
	OutgoingEdges(code string) []datastructure.Edge
	IsAdmissible(a, b datastructure.Airport) bool
}

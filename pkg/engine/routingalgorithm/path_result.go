package routingalgorithm

import (
	"github.com/lintang-b-s/skyroute/pkg/datastructure"
	"github.com/lintang-b-s/skyroute/pkg/util"
)

func (rt *RouteAlgorithm) reconstructPath(cameFrom map[string]cameFromPair, from, to string) []datastructure.Edge {
	edges := []datastructure.Edge{}
	for curr := to; curr != from; {
		pair := cameFrom[curr]
		edges = append(edges, pair.Edge)
		curr = pair.NodeID
	}
	return util.ReverseG(edges)
}

// classifyFailure only looks at the direct segment: a destination that is
// unreachable for other reasons while the direct line crosses a zone is still
// reported as a zone block.
func (rt *RouteAlgorithm) classifyFailure(from, to datastructure.Airport) datastructure.PathResult {
	if !rt.g.IsAdmissible(from, to) {
		return datastructure.NewFailedPathResult(datastructure.RestrictedZoneBlock, MsgZoneBlocked)
	}
	return datastructure.NewFailedPathResult(datastructure.NoRoute, MsgNoRoute)
}

package routingalgorithm

import (
	"context"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"
)

const (
	MsgAirportNotFound = "Source or Destination airport not found."
	MsgSameAirport     = "Source and destination are the same airport."
	MsgZoneBlocked     = "Direct route blocked by Restricted Zone."
	MsgNoRoute         = "No route found."

	// ctx is polled once per this many frontier extractions.
	ctxCheckInterval = 1024
)

type cameFromPair struct {
	Edge   datastructure.Edge
	NodeID string
}

type RouteAlgorithm struct {
	g FlightGraph
}

func NewRouteAlgorithm(g FlightGraph) *RouteAlgorithm {
	return &RouteAlgorithm{g: g}
}

// Weight is the cost of traversing e under criterion c.
func Weight(c datastructure.Criterion, e datastructure.Edge) int64 {
	switch c {
	case datastructure.Fastest:
		return e.DurationMinutes
	case datastructure.Layover:
		return e.Hops()
	default:
		return e.Price.Cents()
	}
}

// FindPath runs Dijkstra from source to dest minimising criterion. Failures are
// reported in the returned PathResult, never as an error.
func (rt *RouteAlgorithm) FindPath(source, dest string, criterion datastructure.Criterion) datastructure.PathResult {
	res, _ := rt.FindPathContext(context.Background(), source, dest, criterion)
	return res
}

// FindPathContext is FindPath with cancellation. The only error it returns is ctx.Err().
func (rt *RouteAlgorithm) FindPathContext(ctx context.Context, source, dest string,
	criterion datastructure.Criterion) (datastructure.PathResult, error) {
	from, okFrom := rt.g.GetNode(source)
	to, okTo := rt.g.GetNode(dest)
	if !okFrom || !okTo {
		return datastructure.NewFailedPathResult(datastructure.NoRoute, MsgAirportNotFound), nil
	}

	if from.Code == to.Code {
		res := datastructure.NewPathResult(nil)
		res.Message = MsgSameAirport
		return res, nil
	}

	pq := datastructure.NewMinHeap[string]()

	costSoFar := make(map[string]int64)
	costSoFar[from.Code] = 0

	cameFrom := make(map[string]cameFromPair)

	pq.Insert(datastructure.NewPriorityQueueNode(0, from.Code))

	extracted := 0
	for pq.Size() > 0 {
		current, _ := pq.ExtractMin()

		extracted++
		if extracted%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return datastructure.PathResult{}, err
			}
		}

		if current.Rank > costSoFar[current.Item] {
			// stale entry, node sudah diextract dengan cost yang lebih kecil
			continue
		}

		if current.Item == to.Code {
			break
		}

		for _, edge := range rt.g.OutgoingEdges(current.Item) {
			newCost := current.Rank + Weight(criterion, edge)
			oldCost, ok := costSoFar[edge.To.Code]
			if !ok || newCost < oldCost {
				costSoFar[edge.To.Code] = newCost
				cameFrom[edge.To.Code] = cameFromPair{edge, current.Item}
				pq.Insert(datastructure.NewPriorityQueueNode(newCost, edge.To.Code))
			}
		}
	}

	if _, ok := cameFrom[to.Code]; !ok {
		return rt.classifyFailure(from, to), nil
	}

	return datastructure.NewPathResult(rt.reconstructPath(cameFrom, from.Code, to.Code)), nil
}

package concurrent

import (
	"github.com/lintang-b-s/skyroute/pkg/datastructure"
)

// SegmentJobItem is one distinct (from, to) airport pair whose straight segment
// must be checked against the restricted zones.
type SegmentJobItem struct {
	PairID int
	From   datastructure.Airport
	To     datastructure.Airport
}

func NewSegmentJobItem(pairID int, from, to datastructure.Airport) SegmentJobItem {
	return SegmentJobItem{
		PairID: pairID,
		From:   from,
		To:     to,
	}
}

// SegmentVerdict is the admissibility result for a SegmentJobItem.
type SegmentVerdict struct {
	PairID     int
	Admissible bool
}

type JobI interface {
	SegmentJobItem
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}
type JobFunc[T JobI, G any] func(job T) G

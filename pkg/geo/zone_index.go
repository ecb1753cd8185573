package geo

import (
	"github.com/lintang-b-s/skyroute/pkg/datastructure"

	"github.com/tidwall/rtree"
)

// ZoneIndex answers admissibility queries with an R-tree over zone bounding
// boxes, so only zones whose box overlaps the segment box run the exact test.
type ZoneIndex struct {
	zones []datastructure.RestrictedZone
	tree  rtree.RTreeG[int]
}

func NewZoneIndex(zones []datastructure.RestrictedZone) *ZoneIndex {
	zi := &ZoneIndex{
		zones: zones,
	}
	for i, zone := range zones {
		if len(zone.Ring) == 0 {
			continue
		}
		b := zone.Ring.Bound()
		zi.tree.Insert(b.Min, b.Max, i)
	}
	return zi
}

func (zi *ZoneIndex) Zones() []datastructure.RestrictedZone {
	return zi.zones
}

// IsAdmissible gives the same answer as IsAdmissible(a, b, zi.Zones()).
func (zi *ZoneIndex) IsAdmissible(a, b datastructure.Airport) bool {
	p, q := airportPoint(a), airportPoint(b)
	bound := segmentBound(p, q)

	admissible := true
	zi.tree.Search(bound.Min, bound.Max, func(_, _ [2]float64, idx int) bool {
		if SegmentIntersectsRing(p, q, zi.zones[idx].Ring) {
			admissible = false
			return false
		}
		return true
	})
	return admissible
}

// BlockingZone returns the first zone the segment enters, if any.
func (zi *ZoneIndex) BlockingZone(a, b datastructure.Airport) (datastructure.RestrictedZone, bool) {
	p, q := airportPoint(a), airportPoint(b)
	bound := segmentBound(p, q)

	found := -1
	zi.tree.Search(bound.Min, bound.Max, func(_, _ [2]float64, idx int) bool {
		if SegmentIntersectsRing(p, q, zi.zones[idx].Ring) {
			if found == -1 || idx < found {
				found = idx
			}
		}
		return true
	})
	if found == -1 {
		return datastructure.RestrictedZone{}, false
	}
	return zi.zones[found], true
}

package geo

import (
	"github.com/lintang-b-s/skyroute/pkg/datastructure"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// IsAdmissible reports whether the straight (lon, lat) segment between a and b
// stays clear of every zone. Touching a zone boundary counts as entering it.
// Coordinates are treated as planar, there is no great-circle correction.
func IsAdmissible(a, b datastructure.Airport, zones []datastructure.RestrictedZone) bool {
	p, q := airportPoint(a), airportPoint(b)
	for i := range zones {
		if SegmentIntersectsRing(p, q, zones[i].Ring) {
			return false
		}
	}
	return true
}

func airportPoint(a datastructure.Airport) orb.Point {
	return orb.Point{a.Lon, a.Lat}
}

// SegmentIntersectsRing reports whether segment pq crosses or touches the ring
// boundary, or lies inside the ring.
func SegmentIntersectsRing(p, q orb.Point, ring orb.Ring) bool {
	n := len(ring)
	if n == 0 {
		return false
	}

	if !segmentBound(p, q).Intersects(ring.Bound()) {
		return false
	}

	for i := 0; i < n; i++ {
		r1 := ring[i]
		r2 := ring[(i+1)%n]
		if segmentsIntersect(p, q, r1, r2) {
			return true
		}
	}

	// no boundary contact, so the segment is either wholly inside or wholly outside.
	// RingContains is only asked about points known to be off the boundary.
	return n >= 3 && planar.RingContains(ring, p)
}

func segmentBound(p, q orb.Point) orb.Bound {
	return orb.MultiPoint{p, q}.Bound()
}

// orientation of the triplet (a, b, c): 0 collinear, 1 clockwise, 2 counterclockwise.
func orientation(a, b, c orb.Point) int {
	cross := (b[1]-a[1])*(c[0]-b[0]) - (b[0]-a[0])*(c[1]-b[1])
	switch {
	case cross == 0:
		return 0
	case cross > 0:
		return 1
	default:
		return 2
	}
}

// onSegment reports whether c, known collinear with a and b, lies on segment ab.
func onSegment(a, b, c orb.Point) bool {
	return c[0] <= max(a[0], b[0]) && c[0] >= min(a[0], b[0]) &&
		c[1] <= max(a[1], b[1]) && c[1] >= min(a[1], b[1])
}

// segmentsIntersect includes touching endpoints and collinear overlap.
func segmentsIntersect(p1, q1, p2, q2 orb.Point) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if o1 == 0 && onSegment(p1, q1, p2) {
		return true
	}
	if o2 == 0 && onSegment(p1, q1, q2) {
		return true
	}
	if o3 == 0 && onSegment(p2, q2, p1) {
		return true
	}
	if o4 == 0 && onSegment(p2, q2, q1) {
		return true
	}
	return false
}

package datastructure

import "github.com/paulmach/orb"

// RestrictedZone is a closed polygon ring of (lon, lat) vertices no flight
// segment may touch or cross.
type RestrictedZone struct {
	Name string
	Ring orb.Ring
}

// NewRestrictedZone closes the ring when the last vertex differs from the first.
func NewRestrictedZone(name string, ring orb.Ring) RestrictedZone {
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		closed := make(orb.Ring, len(ring), len(ring)+1)
		copy(closed, ring)
		ring = append(closed, ring[0])
	}
	return RestrictedZone{Name: name, Ring: ring}
}

// LatLonPairs returns the ring as [lat, lon] pairs, the order map widgets expect.
func (z RestrictedZone) LatLonPairs() [][2]float64 {
	pairs := make([][2]float64, 0, len(z.Ring))
	for _, p := range z.Ring {
		pairs = append(pairs, [2]float64{p.Lat(), p.Lon()})
	}
	return pairs
}

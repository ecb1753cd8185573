package ingest

import (
	"fmt"
	"io"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func getProp[T any](m map[string]interface{}, name string) (T, bool) {
	p, ok := m[name]
	if !ok {
		var t T
		return t, false
	}

	pv, ok := p.(T)
	if !ok {
		var t T
		return t, false
	}

	return pv, true
}

// ParseZones reads a GeoJSON FeatureCollection. Each Polygon, and each polygon
// of a MultiPolygon, becomes one zone from its outer ring. Holes are ignored,
// a zone blocks its whole outer ring.
func ParseZones(r io.Reader) ([]datastructure.RestrictedZone, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read zones: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("parse zones: %w", err)
	}

	zones := []datastructure.RestrictedZone{}
	addZone := func(name string, poly orb.Polygon) {
		if len(poly) == 0 || len(poly[0]) < 3 {
			return
		}
		if name == "" {
			name = fmt.Sprintf("zone-%d", len(zones)+1)
		}
		zones = append(zones, datastructure.NewRestrictedZone(name, poly[0]))
	}

	for _, f := range fc.Features {
		name, _ := getProp[string](f.Properties, "name")

		switch g := f.Geometry.(type) {
		case orb.Polygon:
			addZone(name, g)
		case orb.MultiPolygon:
			for i, poly := range g {
				polyName := name
				if polyName != "" && len(g) > 1 {
					polyName = fmt.Sprintf("%s #%d", name, i+1)
				}
				addZone(polyName, poly)
			}
		}
	}
	return zones, nil
}

// DefaultZones are used when no zones file is configured.
func DefaultZones() []datastructure.RestrictedZone {
	return []datastructure.RestrictedZone{
		datastructure.NewRestrictedZone("War Zone A", orb.Ring{{30, 45}, {35, 45}, {35, 50}, {30, 50}, {30, 45}}),
		datastructure.NewRestrictedZone("No Fly Zone B", orb.Ring{{125, 35}, {130, 35}, {130, 40}, {125, 40}, {125, 35}}),
	}
}

package geo

import (
	"math"
	"sort"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"

	"github.com/uber/h3-go/v4"
)

const (
	// resolution 4 cells cover ~1770 km2, coarse enough for airport density.
	airportCellResolution = 4
	maxGridDiskRadius     = 60
)

type NearbyAirport struct {
	Airport    datastructure.Airport `json:"airport"`
	DistanceKm float64               `json:"distanceKm"`
}

// AirportIndex buckets airports by H3 cell for radius queries.
type AirportIndex struct {
	cells map[h3.Cell][]datastructure.Airport
}

func NewAirportIndex(airports []datastructure.Airport) *AirportIndex {
	idx := &AirportIndex{
		cells: make(map[h3.Cell][]datastructure.Airport, len(airports)),
	}
	for _, a := range airports {
		cell := h3.LatLngToCell(h3.NewLatLng(a.Lat, a.Lon), airportCellResolution)
		idx.cells[cell] = append(idx.cells[cell], a)
	}
	return idx
}

// Nearby returns up to k airports within radiusKm of (lat, lon), closest first.
// k <= 0 means no limit.
func (idx *AirportIndex) Nearby(lat, lon, radiusKm float64, k int) []NearbyAirport {
	result := []NearbyAirport{}
	if radiusKm <= 0 {
		return result
	}

	for _, cell := range kRingIndexesArea(lat, lon, radiusKm) {
		for _, a := range idx.cells[cell] {
			dist := GreatCircleDistanceKM(lat, lon, a.Lat, a.Lon)
			if dist <= radiusKm {
				result = append(result, NearbyAirport{Airport: a, DistanceKm: dist})
			}
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].DistanceKm == result[j].DistanceKm {
			return result[i].Airport.Code < result[j].Airport.Code
		}
		return result[i].DistanceKm < result[j].DistanceKm
	})
	if k > 0 && len(result) > k {
		result = result[:k]
	}
	return result
}

// kRingIndexesArea grows the grid disk until it covers a circle of searchRadiusKm.
// one extra ring absorbs the hexagon/circle mismatch at the disk edge.
func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	home := h3.NewLatLng(lat, lon)
	origin := h3.LatLngToCell(home, airportCellResolution)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea

	for diskArea < searchArea && radius < maxGridDiskRadius {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	return h3.GridDisk(origin, min(radius+1, maxGridDiskRadius))
}

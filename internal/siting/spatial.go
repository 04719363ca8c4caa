// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Spatial filtering by state membership or great-circle radius.

package siting

import (
	"math"

	"gridsite/internal/nodes"
)

// EarthRadiusKM is the mean earth radius used for great-circle distances.
const EarthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance in km between two points
// given in degrees.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180.0
	phi2 := lat2 * math.Pi / 180.0
	dPhi := (lat2 - lat1) * math.Pi / 180.0
	dLambda := (lon2 - lon1) * math.Pi / 180.0

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	// rounding can push a slightly past 1 for antipodal points
	a = clamp(a, 0, 1)
	return 2 * EarthRadiusKM * math.Asin(math.Sqrt(a))
}

// DistancesKM computes the distance from (lat, lon) to every row in one pass.
func DistancesKM(lat, lon float64, rows []nodes.Node) []float64 {
	out := make([]float64, len(rows))
	for i, n := range rows {
		out[i] = HaversineKM(lat, lon, n.Latitude.Float64, n.Longitude.Float64)
	}
	return out
}

// FilterLocation returns the rows matching f, in input order. For radial
// filters the second return value holds each kept row's distance to the
// nearest query point; it is nil otherwise. An empty result is not an
// error.
func FilterLocation(rows []nodes.Node, f LocationFilter) ([]nodes.Node, []float64, error) {
	if err := f.Validate(); err != nil {
		return nil, nil, err
	}
	switch f.Kind {
	case FilterStates:
		return filterStates(rows, f.States), nil, nil
	case FilterRadial:
		kept, dist := filterRadial(rows, f.Points)
		return kept, dist, nil
	default:
		return append([]nodes.Node(nil), rows...), nil, nil
	}
}

func filterStates(rows []nodes.Node, states []string) []nodes.Node {
	set := make(map[string]struct{}, len(states))
	for _, s := range states {
		set[nodes.NormalizeState(s)] = struct{}{}
	}
	out := make([]nodes.Node, 0, len(rows))
	for _, n := range rows {
		if _, ok := set[nodes.NormalizeState(n.State)]; ok {
			out = append(out, n)
		}
	}
	return out
}

func filterRadial(rows []nodes.Node, points []RadialPoint) ([]nodes.Node, []float64) {
	nearest := make([]float64, len(rows))
	fill(nearest, math.Inf(1))
	inside := make([]bool, len(rows))
	for _, p := range points {
		d := DistancesKM(p.Lat, p.Lon, rows)
		for i := range rows {
			if d[i] <= p.RadiusKM {
				inside[i] = true
			}
			if d[i] < nearest[i] {
				nearest[i] = d[i]
			}
		}
	}
	out := make([]nodes.Node, 0, len(rows))
	dist := make([]float64, 0, len(rows))
	for i, n := range rows {
		if inside[i] {
			out = append(out, n)
			dist = append(dist, nearest[i])
		}
	}
	return out, dist
}

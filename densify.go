/*
Copyright © 2024 the raster-footprint authors.
This file is part of raster-footprint.

raster-footprint is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

raster-footprint is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with raster-footprint.  If not, see <http://www.gnu.org/licenses/>.
*/

package rasterfootprint

import (
	"math"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"
)

// DensifyByFactor interpolates factor-1 equally spaced points between
// every pair of adjacent ring points. Interpolation is linear in
// parameter index, not arc length. A ring of N points becomes a ring
// of factor*(N-1)+1 points with every original point preserved at
// indices that are multiples of factor.
func DensifyByFactor(ring []geom.Point, factor int) []geom.Point {
	if len(ring) == 0 {
		return nil
	}
	out := make([]geom.Point, 0, factor*(len(ring)-1)+1)
	xs := make([]float64, factor+1)
	ys := make([]float64, factor+1)
	for i := 0; i < len(ring)-1; i++ {
		floats.Span(xs, ring[i].X, ring[i+1].X)
		floats.Span(ys, ring[i].Y, ring[i+1].Y)
		for k := 0; k < factor; k++ {
			out = append(out, geom.Point{X: xs[k], Y: ys[k]})
		}
	}
	return append(out, ring[len(ring)-1])
}

// DensifyByDistance inserts points along each ring segment at the
// given spacing, in the ring's coordinate units. Each segment
// contributes ceil(length/distance) points starting at its first
// endpoint; a segment shorter than distance gains no new points. The
// ring's final point is appended once at the end.
func DensifyByDistance(ring []geom.Point, distance float64) []geom.Point {
	if len(ring) == 0 {
		return nil
	}
	out := make([]geom.Point, 0, len(ring))
	for i := 0; i < len(ring)-1; i++ {
		p, q := ring[i], ring[i+1]
		steps := math.Hypot(q.X-p.X, q.Y-p.Y) / distance
		n := int(math.Ceil(steps))
		if n == 0 {
			continue // zero-length segment
		}
		sx := (q.X - p.X) / steps
		sy := (q.Y - p.Y) / steps
		for k := 0; k < n; k++ {
			out = append(out, geom.Point{X: p.X + float64(k)*sx, Y: p.Y + float64(k)*sy})
		}
	}
	return append(out, ring[len(ring)-1])
}

// DensifyPolygon adds vertices to the exterior and every hole of p
// according to exactly one of factor or distance; see Densify.
func DensifyPolygon(p geom.Polygon, factor int, distance float64) geom.Polygon {
	out := make(geom.Polygon, len(p))
	for i, r := range p {
		if factor > 0 {
			out[i] = DensifyByFactor(r, factor)
		} else {
			out[i] = DensifyByDistance(r, distance)
		}
	}
	return out
}

// Densify adds vertices to a polygon or to each polygon of a
// multipolygon. Exactly one of factor (a positive integer) or
// distance (a positive length in the geometry's coordinate units) may
// be set; passing both is an InvalidArgument error and passing
// neither returns the geometry unchanged. No precision rounding is
// applied here; the reprojection stage owns the precision contract.
func Densify(g geom.Polygonal, factor int, distance float64) (geom.Polygonal, error) {
	if factor > 0 && distance > 0 {
		return nil, invalidArgumentf("only one of densify factor or distance can be specified")
	}
	if factor < 0 {
		return nil, invalidArgumentf("densify factor must be a positive integer, got %d", factor)
	}
	if distance < 0 {
		return nil, invalidArgumentf("densify distance must be positive, got %g", distance)
	}
	if factor == 0 && distance == 0 {
		return g, nil
	}
	switch g := g.(type) {
	case geom.Polygon:
		return DensifyPolygon(g, factor, distance), nil
	case geom.MultiPolygon:
		out := make(geom.MultiPolygon, len(g))
		for i, p := range g {
			out[i] = DensifyPolygon(p, factor, distance)
		}
		return out, nil
	}
	return nil, invalidArgumentf("geometry must be a Polygon or MultiPolygon")
}

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
)

// Simplify reduces the vertex count of g so that no removed vertex is
// further than tolerance from the simplified outline, in the
// geometry's current coordinate units. Each ring (the exterior and
// every hole of every polygon) is simplified independently with
// Ramer-Douglas-Peucker; topology is not preserved. A ring that
// degenerates below four points is dropped, so a large tolerance can
// remove holes, and a very large tolerance can empty the geometry
// entirely. The result is winding-canonicalized. A nil tolerance
// returns g unchanged.
func Simplify(g geom.Polygonal, tolerance *float64) geom.Polygonal {
	if tolerance == nil {
		return g
	}
	switch g := g.(type) {
	case geom.Polygon:
		return SimplifyPolygon(g, *tolerance)
	case geom.MultiPolygon:
		out := make(geom.MultiPolygon, 0, len(g))
		for _, p := range g {
			sp := SimplifyPolygon(p, *tolerance)
			if len(sp) > 0 {
				out = append(out, sp)
			}
		}
		return out
	}
	return g
}

// SimplifyPolygon simplifies the exterior and each hole of p. If the
// exterior collapses the whole polygon collapses; collapsed holes are
// dropped individually.
func SimplifyPolygon(p geom.Polygon, tolerance float64) geom.Polygon {
	if len(p) == 0 {
		return p
	}
	ext := simplifyRing(p[0], tolerance)
	if ext == nil {
		return geom.Polygon{}
	}
	out := geom.Polygon{ext}
	for _, hole := range p[1:] {
		if h := simplifyRing(hole, tolerance); h != nil {
			out = append(out, h)
		}
	}
	return canonicalize(out).(geom.Polygon)
}

// simplifyRing runs Ramer-Douglas-Peucker on a closed ring. The ring
// is first rotated to start at its lexicographically smallest vertex:
// that vertex lies on the ring's convex hull, so anchoring the
// endpoint-preserving reduction there cannot pin a removable vertex,
// no matter where the traced ring happened to start. It returns nil if
// the simplified ring has fewer than four points and therefore no
// longer bounds an area.
func simplifyRing(ring []geom.Point, tolerance float64) []geom.Point {
	if len(ring) < 4 {
		return nil
	}
	ring = rotateToMin(ring)
	keep := make([]bool, len(ring))
	keep[0], keep[len(ring)-1] = true, true
	douglasPeucker(ring, 0, len(ring)-1, tolerance, keep)
	out := make([]geom.Point, 0, len(ring))
	for i, k := range keep {
		if k {
			out = append(out, ring[i])
		}
	}
	if len(out) < 4 {
		return nil
	}
	return out
}

// rotateToMin reopens a closed ring, rotates it to start at its
// lexicographically smallest vertex, and closes it again.
func rotateToMin(ring []geom.Point) []geom.Point {
	if len(ring) < 2 || ring[0] != ring[len(ring)-1] {
		return ring
	}
	open := ring[:len(ring)-1]
	min := 0
	for i, p := range open {
		if p.X < open[min].X || (p.X == open[min].X && p.Y < open[min].Y) {
			min = i
		}
	}
	out := make([]geom.Point, 0, len(ring))
	out = append(out, open[min:]...)
	out = append(out, open[:min]...)
	return append(out, out[0])
}

func douglasPeucker(pts []geom.Point, start, end int, tolerance float64, keep []bool) {
	if end <= start+1 {
		return
	}
	far, dist := start, 0.0
	for i := start + 1; i < end; i++ {
		if d := perpendicularDistance(pts[i], pts[start], pts[end]); d > dist {
			far, dist = i, d
		}
	}
	if dist <= tolerance {
		return
	}
	keep[far] = true
	douglasPeucker(pts, start, far, tolerance, keep)
	douglasPeucker(pts, far, end, tolerance, keep)
}

// perpendicularDistance is the distance from p to the segment a-b,
// falling back to point distance when the segment is degenerate.
func perpendicularDistance(p, a, b geom.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

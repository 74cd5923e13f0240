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
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/op"
)

// Geometries handled by the pipeline are either geom.Polygon or
// geom.MultiPolygon, expressed through the geom.Polygonal interface.
// Values of any other dynamic type are rejected at the GeoJSON
// decoding boundary; internal stages only ever see these two.

func clonePolygon(p geom.Polygon) geom.Polygon {
	o := make(geom.Polygon, len(p))
	for i, r := range p {
		o[i] = make([]geom.Point, len(r))
		copy(o[i], r)
	}
	return o
}

func clonePolygonal(g geom.Polygonal) geom.Polygonal {
	switch g := g.(type) {
	case geom.Polygon:
		return clonePolygon(g)
	case geom.MultiPolygon:
		o := make(geom.MultiPolygon, len(g))
		for i, p := range g {
			o[i] = clonePolygon(p)
		}
		return o
	}
	return g
}

// canonicalize returns a copy of g rewound so that every exterior ring
// is counter-clockwise and every hole is clockwise.
func canonicalize(g geom.Polygonal) geom.Polygonal {
	c := clonePolygonal(g)
	op.FixOrientation(c) // cannot fail for Polygon and MultiPolygon
	return c
}

// closeRing appends the first point to r if the ring is open.
func closeRing(r []geom.Point) []geom.Point {
	if len(r) > 0 && !r[0].Equals(r[len(r)-1]) {
		r = append(r, r[0])
	}
	return r
}

// dedupRing removes consecutive duplicate points from r. The closing
// point is retained: if removal collapses the ring onto its first
// point, the ring stays closed.
func dedupRing(r []geom.Point) []geom.Point {
	if len(r) == 0 {
		return r
	}
	out := make([]geom.Point, 0, len(r))
	out = append(out, r[0])
	for _, p := range r[1:] {
		if !p.Equals(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return closeRing(out)
}

// ringInRing reports whether inner is nested inside outer, judged by
// the first inner vertex that does not lie on outer's boundary.
func ringInRing(inner, outer []geom.Point) bool {
	shell := geom.Polygon{outer}
	for _, p := range inner {
		switch p.Within(shell) {
		case geom.Inside:
			return true
		case geom.Outside:
			return false
		}
	}
	return false
}

// splitNestedRings regroups the flat ring list of p into polygons:
// even-depth rings become exteriors and each odd-depth ring becomes a
// hole of its immediate parent. Polygon union results carry all their
// contours in one flat Polygon value, so this undoes that flattening.
func splitNestedRings(p geom.Polygon) []geom.Polygon {
	if len(p) <= 1 {
		return []geom.Polygon{p}
	}
	depth := make([]int, len(p))
	for i, r := range p {
		for j, s := range p {
			if i != j && ringInRing(r, s) {
				depth[i]++
			}
		}
	}
	polys := make([]geom.Polygon, 0, len(p))
	owner := make(map[int]int) // ring index -> output polygon index
	for i, r := range p {
		if depth[i]%2 == 0 {
			owner[i] = len(polys)
			polys = append(polys, geom.Polygon{r})
		}
	}
	for i, r := range p {
		if depth[i]%2 == 0 {
			continue
		}
		// The parent exterior is the containing ring one level up.
		for j, s := range p {
			if j != i && depth[j] == depth[i]-1 && ringInRing(r, s) {
				polys[owner[j]] = append(polys[owner[j]], r)
				break
			}
		}
	}
	return polys
}

// asGeometry wraps a single polygon as-is and multiple polygons as a
// MultiPolygon.
func asGeometry(polys []geom.Polygon) geom.Polygonal {
	if len(polys) == 1 {
		return polys[0]
	}
	return geom.MultiPolygon(polys)
}

// convexHull computes the convex hull of pts with the monotone chain
// algorithm, returning a closed counter-clockwise ring. Collinear
// boundary points are excluded.
func convexHull(pts []geom.Point) geom.Polygon {
	if len(pts) == 0 {
		return geom.Polygon{}
	}
	sorted := make([]geom.Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	uniq := sorted[:1]
	for _, p := range sorted[1:] {
		if !p.Equals(uniq[len(uniq)-1]) {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		ring := make([]geom.Point, len(uniq))
		copy(ring, uniq)
		return geom.Polygon{closeRing(ring)}
	}
	cross := func(o, a, b geom.Point) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}
	var lower []geom.Point
	for _, p := range uniq {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	var upper []geom.Point
	for i := len(uniq) - 1; i >= 0; i-- {
		p := uniq[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return geom.Polygon{closeRing(hull)}
}

// allVertices collects every vertex of every ring of g.
func allVertices(g geom.Polygonal) []geom.Point {
	var pts []geom.Point
	for _, p := range g.Polygons() {
		for _, r := range p {
			pts = append(pts, r...)
		}
	}
	return pts
}

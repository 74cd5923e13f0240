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

// Package vectorize traces the contiguous regions of a 2D cell grid
// into polygon boundary rings. Each 4-connected region of equal cell
// value yields one polygon whose rings follow the pixel edges: one
// exterior ring plus one ring per enclosed region of different value.
package vectorize

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// Shape is one traced region: its boundary polygon and the cell value
// shared by the region.
type Shape struct {
	Geom  geom.Polygon
	Value int
}

// Transform maps a pixel-corner coordinate (column, row) to CRS
// coordinates.
type Transform func(column, row float64) (x, y float64)

// Shapes traces every contiguous region of grid into a polygon with
// vertices mapped through transform. Regions are connected through
// cell edges, not corners. Rings are closed and collinear boundary
// points are elided; ring winding is arbitrary and left to the caller
// to canonicalize. The result is ordered by first cell appearance in
// row-major order.
func Shapes(grid *sparse.DenseArrayInt, transform Transform) []Shape {
	rows, cols := grid.Shape[0], grid.Shape[1]
	if rows == 0 || cols == 0 {
		return nil
	}
	labels, values := label(grid, rows, cols)

	shapes := make([]Shape, len(values))
	edges := make([]map[corner]corner, len(values))
	for i := range edges {
		edges[i] = make(map[corner]corner)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			emitEdges(labels, rows, cols, r, c, edges[labels[r*cols+c]])
		}
	}
	for i, ve := range edges {
		rings := stitch(ve)
		shapes[i] = Shape{Geom: assemble(rings, transform), Value: values[i]}
	}
	return shapes
}

type corner struct {
	c, r int
}

type cornerEdges struct {
	out   [2]corner
	count int
}

// label assigns a region index to every cell, connecting equal-valued
// cells through shared edges. It returns the per-cell region indices
// and the cell value of each region, in discovery order.
func label(grid *sparse.DenseArrayInt, rows, cols int) ([]int, []int) {
	labels := make([]int, rows*cols)
	for i := range labels {
		labels[i] = -1
	}
	var values []int
	var stack []int
	for start := range labels {
		if labels[start] >= 0 {
			continue
		}
		id := len(values)
		v := grid.Elements[start]
		values = append(values, v)
		labels[start] = id
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			r := cur / cols
			for _, n := range [4]int{cur - cols, cur + cols, cur - 1, cur + 1} {
				if n < 0 || n >= len(labels) || labels[n] >= 0 {
					continue
				}
				// Horizontal neighbors must stay on the same row.
				if (n == cur-1 || n == cur+1) && n/cols != r {
					continue
				}
				if grid.Elements[n] == v {
					labels[n] = id
					stack = append(stack, n)
				}
			}
		}
	}
	return labels, values
}

// emitEdges adds the directed boundary edges of cell (r, c) that face
// cells of a different region (or the grid edge). Edges run clockwise
// around the cell in (column, row) space, so exterior rings and hole
// rings come out with opposite winding.
func emitEdges(labels []int, rows, cols, r, c int, dst map[corner]corner) {
	id := labels[r*cols+c]
	diff := func(rr, cc int) bool {
		return rr < 0 || rr >= rows || cc < 0 || cc >= cols || labels[rr*cols+cc] != id
	}
	if diff(r-1, c) {
		addEdge(dst, corner{c, r}, corner{c + 1, r})
	}
	if diff(r, c+1) {
		addEdge(dst, corner{c + 1, r}, corner{c + 1, r + 1})
	}
	if diff(r+1, c) {
		addEdge(dst, corner{c + 1, r + 1}, corner{c, r + 1})
	}
	if diff(r, c-1) {
		addEdge(dst, corner{c, r + 1}, corner{c, r})
	}
}

// A corner can have at most two outgoing boundary edges (a saddle
// where the region touches itself diagonally). Store the second under
// a shifted key.
func addEdge(dst map[corner]corner, from, to corner) {
	if _, ok := dst[from]; !ok {
		dst[from] = to
		return
	}
	dst[saddleKey(from)] = to
}

func saddleKey(p corner) corner {
	return corner{c: -p.c - 1, r: -p.r - 1}
}

// stitch links the directed edge set into closed rings. At a saddle
// corner the walk prefers the left turn, which keeps each region
// boundary a single self-touching ring instead of pinching it into
// two.
func stitch(edges map[corner]corner) [][]corner {
	var rings [][]corner
	for len(edges) > 0 {
		// Start at the smallest corner with a single outgoing edge, so
		// that a self-touching ring is not split at its pinch point and
		// the walk does not depend on map iteration order.
		var start corner
		found := false
		better := func(k corner) bool {
			return !found || k.r < start.r || (k.r == start.r && k.c < start.c)
		}
		for k := range edges {
			real := k
			if k.c < 0 { // saddle alias, resolve to the real corner
				real = saddleKey(k)
			}
			_, pok := edges[real]
			_, sok := edges[saddleKey(real)]
			if pok && sok {
				continue
			}
			if better(real) {
				start = real
				found = true
			}
		}
		if !found { // only saddle corners remain
			for k := range edges {
				real := k
				if k.c < 0 {
					real = saddleKey(k)
				}
				if better(real) {
					start = real
					found = true
				}
			}
		}
		ring := []corner{start}
		cur := start
		dir := corner{math.MaxInt32, math.MaxInt32}
		for {
			next, ok := takeEdge(edges, cur, dir)
			if !ok {
				break
			}
			dir = corner{c: next.c - cur.c, r: next.r - cur.r}
			cur = next
			ring = append(ring, cur)
			if cur == start {
				break
			}
		}
		if len(ring) > 2 {
			rings = append(rings, ring)
		}
	}
	return rings
}

// takeEdge removes and returns the outgoing edge at cur, preferring
// the left turn relative to the incoming direction when two edges
// leave the same corner.
func takeEdge(edges map[corner]corner, cur, dir corner) (corner, bool) {
	primary, pok := edges[cur]
	alias := saddleKey(cur)
	secondary, sok := edges[alias]
	switch {
	case pok && sok:
		if turnsLeft(dir, corner{c: primary.c - cur.c, r: primary.r - cur.r}) {
			delete(edges, cur)
			return primary, true
		}
		delete(edges, alias)
		return secondary, true
	case pok:
		delete(edges, cur)
		return primary, true
	case sok:
		delete(edges, alias)
		return secondary, true
	}
	return corner{}, false
}

// turnsLeft reports whether candidate is the left turn off of the
// incoming direction, in (column, row) grid space where rows grow
// downward.
func turnsLeft(in, candidate corner) bool {
	// Left of (dc, dr) in row-down coordinates is (dr, -dc).
	return candidate.c == in.r && candidate.r == -in.c
}

// assemble converts the corner rings of one region into a polygon:
// collinear points are elided, vertices are mapped through transform,
// and the ring with the largest area becomes the exterior.
func assemble(rings [][]corner, transform Transform) geom.Polygon {
	type traced struct {
		ring []geom.Point
		area float64
	}
	ts := make([]traced, 0, len(rings))
	for _, ring := range rings {
		cs := elideCollinear(ring)
		if len(cs) < 4 {
			continue
		}
		pts := make([]geom.Point, len(cs))
		for i, p := range cs {
			x, y := transform(float64(p.c), float64(p.r))
			pts[i] = geom.Point{X: x, Y: y}
		}
		ts = append(ts, traced{ring: pts, area: ringArea(cs)})
	}
	if len(ts) == 0 {
		return geom.Polygon{}
	}
	ext := 0
	for i, t := range ts {
		if t.area > ts[ext].area {
			ext = i
		}
	}
	p := geom.Polygon{ts[ext].ring}
	for i, t := range ts {
		if i != ext {
			p = append(p, t.ring)
		}
	}
	return p
}

// elideCollinear removes points that continue a straight run,
// including across the closing seam, and returns a closed ring.
func elideCollinear(ring []corner) []corner {
	// Drop the duplicate closing point while reducing.
	open := ring
	if len(open) > 1 && open[0] == open[len(open)-1] {
		open = open[:len(open)-1]
	}
	n := len(open)
	if n < 3 {
		return nil
	}
	out := make([]corner, 0, n)
	for i := 0; i < n; i++ {
		prev := open[(i+n-1)%n]
		next := open[(i+1)%n]
		cur := open[i]
		straight := (cur.c-prev.c)*(next.r-cur.r) == (cur.r-prev.r)*(next.c-cur.c)
		if !straight {
			out = append(out, cur)
		}
	}
	if len(out) < 3 {
		return nil
	}
	return append(out, out[0])
}

// ringArea returns the unsigned area of a closed corner ring.
func ringArea(ring []corner) float64 {
	a := 0.0
	for i := 0; i < len(ring)-1; i++ {
		a += float64(ring[i].c*ring[i+1].r - ring[i+1].c*ring[i].r)
	}
	return math.Abs(a / 2)
}

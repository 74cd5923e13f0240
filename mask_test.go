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
	"reflect"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// pixelTransform maps (column, row) to (x, y) with rows growing
// downward, the usual north-up raster layout with unit pixels.
var pixelTransform = NewAffine(1, 0, 0, 0, -1, 0)

// concaveMask is an 8x8 mask holding a single 6x6 valid block with a
// notch in its left edge and a notch in its bottom edge.
func concaveMask() *sparse.DenseArrayInt {
	m := sparse.ZerosDenseInt(8, 8)
	for r := 1; r < 7; r++ {
		for c := 1; c < 7; c++ {
			m.Set(MaskValid, r, c)
		}
	}
	// DenseArrayInt.Set ignores zero values, so carve the notches by
	// writing the elements directly.
	for _, rc := range [][2]int{{3, 1}, {4, 1}, {6, 3}, {6, 4}} {
		m.Elements[rc[0]*8+rc[1]] = MaskInvalid
	}
	return m
}

// concaveRing is the boundary of concaveMask under pixelTransform:
// closed, counter-clockwise, starting from the lexicographically
// smallest vertex.
var concaveRing = []geom.Point{
	{X: 1, Y: -7}, {X: 3, Y: -7}, {X: 3, Y: -6}, {X: 5, Y: -6},
	{X: 5, Y: -7}, {X: 7, Y: -7}, {X: 7, Y: -1}, {X: 1, Y: -1},
	{X: 1, Y: -3}, {X: 2, Y: -3}, {X: 2, Y: -5}, {X: 1, Y: -5},
	{X: 1, Y: -7},
}

// squareRing is the convex hull of concaveRing.
var squareRing = []geom.Point{
	{X: 1, Y: -7}, {X: 7, Y: -7}, {X: 7, Y: -1}, {X: 1, Y: -1},
	{X: 1, Y: -7},
}

// normalizeRing rotates a closed ring to start at its
// lexicographically smallest vertex, preserving orientation.
func normalizeRing(r []geom.Point) []geom.Point {
	if len(r) > 1 && r[0].Equals(r[len(r)-1]) {
		r = r[:len(r)-1]
	}
	if len(r) == 0 {
		return nil
	}
	min := 0
	for i, p := range r {
		if p.X < r[min].X || (p.X == r[min].X && p.Y < r[min].Y) {
			min = i
		}
	}
	out := make([]geom.Point, 0, len(r)+1)
	out = append(out, r[min:]...)
	out = append(out, r[:min]...)
	return append(out, out[0])
}

// signedArea is positive for counter-clockwise rings.
func signedArea(r []geom.Point) float64 {
	a := 0.0
	for i := 0; i < len(r)-1; i++ {
		a += r[i].X*r[i+1].Y - r[i+1].X*r[i].Y
	}
	return a / 2
}

func TestCreateMask(t *testing.T) {
	nodata := func(v float64) *float64 { return &v }

	t.Run("2d", func(t *testing.T) {
		data := sparse.ZerosDense(2, 3)
		data.Set(7, 0, 1)
		data.Set(7, 1, 2)
		mask, err := CreateMask(data, nodata(0))
		if err != nil {
			t.Fatal(err)
		}
		want := []int{MaskInvalid, MaskValid, MaskInvalid, MaskInvalid, MaskInvalid, MaskValid}
		if !reflect.DeepEqual(mask.Elements, want) {
			t.Errorf("mask = %v, want %v", mask.Elements, want)
		}
	})

	t.Run("3d bands ORd", func(t *testing.T) {
		data := sparse.ZerosDense(2, 1, 2)
		data.Set(5, 0, 0, 0) // band 1 valid at (0, 0)
		data.Set(5, 1, 0, 1) // band 2 valid at (0, 1)
		mask, err := CreateMask(data, nodata(0))
		if err != nil {
			t.Fatal(err)
		}
		want := []int{MaskValid, MaskValid}
		if !reflect.DeepEqual(mask.Elements, want) {
			t.Errorf("mask = %v, want %v", mask.Elements, want)
		}
	})

	t.Run("nan nodata", func(t *testing.T) {
		data := sparse.ZerosDense(1, 2)
		data.Set(math.NaN(), 0, 0)
		data.Set(1, 0, 1)
		mask, err := CreateMask(data, nodata(math.NaN()))
		if err != nil {
			t.Fatal(err)
		}
		want := []int{MaskInvalid, MaskValid}
		if !reflect.DeepEqual(mask.Elements, want) {
			t.Errorf("mask = %v, want %v", mask.Elements, want)
		}
	})

	t.Run("nil nodata", func(t *testing.T) {
		data := sparse.ZerosDense(2, 2)
		mask, err := CreateMask(data, nil)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range mask.Elements {
			if v != MaskValid {
				t.Errorf("element %d = %d, want %d", i, v, MaskValid)
			}
		}
	})

	t.Run("bad dimensions", func(t *testing.T) {
		data := sparse.ZerosDense(4)
		if _, err := CreateMask(data, nodata(0)); err == nil {
			t.Fatal("expected an error for 1D data")
		}
	})
}

func TestMaskGeometryConcave(t *testing.T) {
	for _, holes := range []bool{false, true} {
		g := MaskGeometry(concaveMask(), pixelTransform, false, holes)
		p, ok := g.(geom.Polygon)
		if !ok {
			t.Fatalf("holes=%v: got %T, want geom.Polygon", holes, g)
		}
		if len(p) != 1 {
			t.Fatalf("holes=%v: got %d rings, want 1", holes, len(p))
		}
		got := normalizeRing(p[0])
		if !reflect.DeepEqual(got, concaveRing) {
			t.Errorf("holes=%v: ring = %v, want %v", holes, got, concaveRing)
		}
		if signedArea(got) <= 0 {
			t.Errorf("holes=%v: exterior ring is not counter-clockwise", holes)
		}
	}
}

func TestMaskGeometryHole(t *testing.T) {
	m := sparse.ZerosDenseInt(5, 5)
	for i := range m.Elements {
		m.Elements[i] = MaskValid
	}
	m.Elements[2*5+2] = MaskInvalid // Set ignores zero values

	g := MaskGeometry(m, pixelTransform, false, true)
	p, ok := g.(geom.Polygon)
	if !ok {
		t.Fatalf("got %T, want geom.Polygon", g)
	}
	if len(p) != 2 {
		t.Fatalf("got %d rings, want an exterior and a hole", len(p))
	}
	if signedArea(p[0]) <= 0 {
		t.Error("exterior ring is not counter-clockwise")
	}
	if signedArea(p[1]) >= 0 {
		t.Error("hole ring is not clockwise")
	}
	wantHole := []geom.Point{
		{X: 2, Y: -3}, {X: 2, Y: -2}, {X: 3, Y: -2}, {X: 3, Y: -3},
		{X: 2, Y: -3},
	}
	if got := normalizeRing(p[1]); !reflect.DeepEqual(got, wantHole) {
		t.Errorf("hole ring = %v, want %v", got, wantHole)
	}

	// Without holes the interior ring is dropped.
	g = MaskGeometry(m, pixelTransform, false, false)
	p, ok = g.(geom.Polygon)
	if !ok {
		t.Fatalf("got %T, want geom.Polygon", g)
	}
	if len(p) != 1 {
		t.Errorf("got %d rings, want 1", len(p))
	}
}

func TestMaskGeometryTwoShells(t *testing.T) {
	m := sparse.ZerosDenseInt(8, 8)
	for r := 1; r < 3; r++ {
		for c := 1; c < 3; c++ {
			m.Set(MaskValid, r, c)
		}
	}
	for r := 4; r < 6; r++ {
		for c := 4; c < 6; c++ {
			m.Set(MaskValid, r, c)
		}
	}
	g := MaskGeometry(m, pixelTransform, false, true)
	mp, ok := g.(geom.MultiPolygon)
	if !ok {
		t.Fatalf("got %T, want geom.MultiPolygon", g)
	}
	if len(mp) != 2 {
		t.Fatalf("got %d polygons, want 2", len(mp))
	}
	for i, p := range mp {
		if len(p) != 1 {
			t.Errorf("polygon %d has %d rings, want 1", i, len(p))
		}
	}
}

func TestMaskGeometryMergeThroughHoles(t *testing.T) {
	// A valid border enclosing an invalid moat around a valid island.
	m := sparse.ZerosDenseInt(7, 7)
	for r := 0; r < 7; r++ {
		for c := 0; c < 7; c++ {
			if r == 0 || r == 6 || c == 0 || c == 6 {
				m.Set(MaskValid, r, c)
			}
		}
	}
	m.Set(MaskValid, 3, 3)

	g := MaskGeometry(m, pixelTransform, false, true)
	if mp, ok := g.(geom.MultiPolygon); !ok || len(mp) != 2 {
		t.Fatalf("with holes: got %T with %d polygons, want a 2-polygon MultiPolygon", g, len(g.Polygons()))
	}

	// Dropping the hole absorbs the island into the border shell.
	g = MaskGeometry(m, pixelTransform, false, false)
	p, ok := g.(geom.Polygon)
	if !ok {
		t.Fatalf("without holes: got %T, want geom.Polygon", g)
	}
	if len(p) != 1 {
		t.Fatalf("without holes: got %d rings, want 1", len(p))
	}
	want := []geom.Point{
		{X: 0, Y: -7}, {X: 7, Y: -7}, {X: 7, Y: 0}, {X: 0, Y: 0},
		{X: 0, Y: -7},
	}
	if got := normalizeRing(p[0]); !reflect.DeepEqual(got, want) {
		t.Errorf("ring = %v, want %v", got, want)
	}
}

func TestMaskGeometryConvexHull(t *testing.T) {
	g := MaskGeometry(concaveMask(), pixelTransform, true, false)
	p, ok := g.(geom.Polygon)
	if !ok {
		t.Fatalf("got %T, want geom.Polygon", g)
	}
	if len(p) != 1 {
		t.Fatalf("got %d rings, want 1", len(p))
	}
	if got := normalizeRing(p[0]); !reflect.DeepEqual(got, squareRing) {
		t.Errorf("hull ring = %v, want %v", got, squareRing)
	}
}

func TestMaskGeometryEmpty(t *testing.T) {
	if g := MaskGeometry(sparse.ZerosDenseInt(4, 4), pixelTransform, false, false); g != nil {
		t.Errorf("got %v, want nil for an all-invalid mask", g)
	}
}

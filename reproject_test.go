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
	"reflect"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"

	"github.com/pjhartzell/raster-footprint/crs"
)

func mustParse(t *testing.T, code string) *proj.SR {
	t.Helper()
	sr, err := crs.Parse(code)
	if err != nil {
		t.Fatal(err)
	}
	return sr
}

func TestReprojectSameCRS(t *testing.T) {
	wgs84 := mustParse(t, "EPSG:4326")

	// Rounding to one decimal place coalesces the second point onto
	// the first; the duplicate must be removed and the ring stay
	// closed.
	p := geom.Polygon{{
		{X: 0, Y: 0}, {X: 0.04, Y: 0.04}, {X: 1, Y: 0}, {X: 1, Y: 1},
		{X: 0, Y: 1}, {X: 0, Y: 0},
	}}
	got, err := Reproject(p, wgs84, wgs84, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := geom.Polygon{{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 0, Y: 0},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReprojectPrecision(t *testing.T) {
	wgs84 := mustParse(t, "EPSG:4326")
	p := geom.Polygon{{
		{X: 0.123456789, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1},
		{X: 0.123456789, Y: 0},
	}}
	got, err := Reproject(p, wgs84, wgs84, DefaultPrecision)
	if err != nil {
		t.Fatal(err)
	}
	if x := got.(geom.Polygon)[0][0].X; x != 0.1234568 {
		t.Errorf("x = %v, want 0.1234568", x)
	}
}

func TestReprojectUTMToWGS84(t *testing.T) {
	utm := mustParse(t, "EPSG:32631")
	wgs84 := mustParse(t, crs.DefaultDestination)

	square := geom.Polygon{{
		{X: 390000, Y: 4490000}, {X: 410000, Y: 4490000},
		{X: 410000, Y: 4510000}, {X: 390000, Y: 4510000},
		{X: 390000, Y: 4490000},
	}}
	got, err := Reproject(square, utm, wgs84, DefaultPrecision)
	if err != nil {
		t.Fatal(err)
	}
	ring := got.(geom.Polygon)[0]
	if len(ring) != 5 {
		t.Fatalf("got %d points, want 5", len(ring))
	}
	if !ring[0].Equals(ring[len(ring)-1]) {
		t.Error("ring is not closed")
	}
	for i, pt := range ring {
		// Zone 31 sits just east of the prime meridian; the square is
		// at mid northern latitudes.
		if pt.X < 0 || pt.X > 6 || pt.Y < 35 || pt.Y > 45 {
			t.Errorf("point %d = %v, outside the expected lon/lat range", i, pt)
		}
		if pt.X != round(pt.X, DefaultPrecision) || pt.Y != round(pt.Y, DefaultPrecision) {
			t.Errorf("point %d = %v not rounded to %d decimal places", i, pt, DefaultPrecision)
		}
	}
}

func TestReprojectMultiPolygon(t *testing.T) {
	wgs84 := mustParse(t, "EPSG:4326")
	mp := geom.MultiPolygon{
		{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}},
		{{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 2}}},
	}
	got, err := Reproject(mp, wgs84, wgs84, DefaultPrecision)
	if err != nil {
		t.Fatal(err)
	}
	if gmp, ok := got.(geom.MultiPolygon); !ok || len(gmp) != 2 {
		t.Errorf("got %T %v, want the 2-polygon MultiPolygon preserved", got, got)
	}
}

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
	"github.com/ctessum/geom/proj"
)

// DefaultPrecision is the number of decimal places kept in footprint
// coordinates when no other precision is requested.
const DefaultPrecision = 7

func round(v float64, precision int) float64 {
	s := math.Pow(10, float64(precision))
	return math.Round(v*s) / s
}

// roundingTransformer wraps t so that transformed coordinates are
// rounded to the given number of decimal places.
func roundingTransformer(t proj.Transformer, precision int) proj.Transformer {
	return func(x, y float64) (float64, float64, error) {
		x, y, err := t(x, y)
		if err != nil {
			return x, y, err
		}
		return round(x, precision), round(y, precision), nil
	}
}

// Reproject maps the vertices of g from the source to the destination
// coordinate reference system, rounding coordinates to precision
// decimal places. Rounding can coalesce formerly distinct points, so
// consecutive duplicates are removed from every ring afterwards;
// non-consecutive duplicates (for example a self-tangent ring
// revisiting a coordinate) are kept, and rings stay closed. A
// source equal to the destination is not special-cased: the transform
// still runs (as identity) so that rounding and duplicate removal
// apply uniformly.
func Reproject(g geom.Polygonal, source, dest *proj.SR, precision int) (geom.Polygonal, error) {
	t, err := source.NewTransform(dest)
	if err != nil {
		return nil, err
	}
	rt := roundingTransformer(t, precision)
	switch g := g.(type) {
	case geom.Polygon:
		return reprojectPolygon(g, rt)
	case geom.MultiPolygon:
		out := make(geom.MultiPolygon, len(g))
		for i, p := range g {
			rp, err := reprojectPolygon(p, rt)
			if err != nil {
				return nil, err
			}
			out[i] = rp
		}
		return out, nil
	}
	return nil, invalidArgumentf("geometry must be a Polygon or MultiPolygon")
}

func reprojectPolygon(p geom.Polygon, t proj.Transformer) (geom.Polygon, error) {
	g, err := p.Transform(t)
	if err != nil {
		return nil, err
	}
	out := g.(geom.Polygon)
	for i, r := range out {
		out[i] = dedupRing(r)
	}
	return out, nil
}

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
	"github.com/ctessum/sparse"

	"github.com/pjhartzell/raster-footprint/internal/vectorize"
)

// Mask cell values. A cell is either valid data or nodata; no other
// values appear in a validity mask.
const (
	MaskValid   = 255
	MaskInvalid = 0
)

// CreateMask produces a validity mask from the given data array.
// Cells matching nodata are set to MaskInvalid, all others to
// MaskValid. If nodata is nil the whole mask is valid. The data array
// may be 2D (rows, columns) or 3D (bands, rows, columns); with
// multiple bands a pixel is valid if at least one band holds a value
// different from nodata. A NaN nodata value is matched with a NaN
// test rather than equality.
func CreateMask(data *sparse.DenseArray, nodata *float64) (*sparse.DenseArrayInt, error) {
	var bands, rows, cols int
	switch len(data.Shape) {
	case 2:
		bands, rows, cols = 1, data.Shape[0], data.Shape[1]
	case 3:
		bands, rows, cols = data.Shape[0], data.Shape[1], data.Shape[2]
	default:
		return nil, invalidArgumentf("data array must have 2 or 3 dimensions, got %d", len(data.Shape))
	}
	mask := sparse.ZerosDenseInt(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if nodata == nil {
				mask.Set(MaskValid, r, c)
				continue
			}
			for b := 0; b < bands; b++ {
				var v float64
				if len(data.Shape) == 2 {
					v = data.Get(r, c)
				} else {
					v = data.Get(b, r, c)
				}
				valid := v != *nodata
				if math.IsNaN(*nodata) {
					valid = !math.IsNaN(v)
				}
				if valid {
					mask.Set(MaskValid, r, c)
					break
				}
			}
		}
	}
	return mask, nil
}

// MaskGeometry extracts a polygon or multipolygon surrounding the
// valid-data regions of mask, with vertices mapped through transform.
// When holes is false (and no convex hull is requested) interior
// rings are dropped and the remaining shells are unioned, so regions
// separated only by holes may merge. When convexHull is true the
// result is the convex hull of all regions, which is always a single
// polygon. The result satisfies the winding invariant: exterior rings
// counter-clockwise, holes clockwise. A mask with no valid regions
// yields nil; that is the "no footprint" outcome, not an error.
func MaskGeometry(mask *sparse.DenseArrayInt, transform Affine, convexHull, holes bool) geom.Polygonal {
	var polys []geom.Polygon
	for _, s := range vectorize.Shapes(mask, transform.Apply) {
		if s.Value == MaskValid {
			polys = append(polys, s.Geom)
		}
	}
	if len(polys) == 0 {
		return nil
	}

	if !holes && !convexHull {
		polys = stripAndUnion(polys)
	}

	for i, p := range polys {
		polys[i] = canonicalize(p).(geom.Polygon)
	}

	extent := asGeometry(polys)
	if convexHull {
		extent = canonicalize(hullOf(extent)).(geom.Polygon)
	}
	return extent
}

// stripAndUnion rebuilds each polygon from its exterior ring only and
// unions the results. The union may come back as one flat polygon
// holding several contours; those are regrouped into nested polygons.
func stripAndUnion(polys []geom.Polygon) []geom.Polygon {
	shells := make(geom.MultiPolygon, len(polys))
	for i, p := range polys {
		shells[i] = geom.Polygon{p[0]}
	}
	if len(shells) == 1 {
		return []geom.Polygon{shells[0]}
	}
	united := shells[0].Union(shells[1:])
	return splitNestedRings(united)
}

// hullOf reduces g to the convex hull of all of its vertices.
func hullOf(g geom.Polygonal) geom.Polygon {
	return convexHull(allVertices(g))
}

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

// Affine is a 6-parameter mapping from pixel-grid coordinates
// (column, row) to CRS coordinates:
//
//	x = A*column + B*row + C
//	y = D*column + E*row + F
//
// The parameter order follows the usual row-major convention for
// affine transformation matrices.
type Affine struct {
	A, B, C, D, E, F float64
}

// NewAffine returns the affine transform with the given parameters.
func NewAffine(a, b, c, d, e, f float64) Affine {
	return Affine{A: a, B: b, C: c, D: d, E: e, F: f}
}

// AffineFromGeoTransform converts a GDAL-ordered geotransform
// (x0, dx, rx, y0, ry, dy) to an Affine.
func AffineFromGeoTransform(gt [6]float64) Affine {
	return Affine{A: gt[1], B: gt[2], C: gt[0], D: gt[4], E: gt[5], F: gt[3]}
}

// Apply maps the pixel coordinate (column, row) to CRS coordinates.
func (t Affine) Apply(column, row float64) (x, y float64) {
	return t.A*column + t.B*row + t.C, t.D*column + t.E*row + t.F
}

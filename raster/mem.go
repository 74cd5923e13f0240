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

package raster

import (
	"fmt"

	"github.com/ctessum/sparse"
)

// MemDataset is an in-memory Dataset.
type MemDataset struct {
	// Data holds the pixel values, indexed [band][row][column]. A 2D
	// array is treated as a single band.
	Data *sparse.DenseArray

	// NodataValues is the per-band nodata value, nil where a band has
	// none. A nil slice means no band has a nodata value.
	NodataValues []*float64

	// Transform is the affine georeferencing transform in GDAL order.
	Transform [6]float64

	// Projection identifies the CRS: an EPSG code, a PROJ.4 string,
	// or WKT.
	Projection string
}

var _ Dataset = (*MemDataset)(nil)

func (d *MemDataset) BandCount() int {
	if len(d.Data.Shape) == 3 {
		return d.Data.Shape[0]
	}
	return 1
}

func (d *MemDataset) Nodata() []*float64 {
	nodata := make([]*float64, d.BandCount())
	copy(nodata, d.NodataValues)
	return nodata
}

func (d *MemDataset) Shape() (rows, cols int) {
	s := d.Data.Shape
	return s[len(s)-2], s[len(s)-1]
}

func (d *MemDataset) GeoTransform() [6]float64 { return d.Transform }

func (d *MemDataset) CRS() string { return d.Projection }

func (d *MemDataset) Read(bands []int) (*sparse.DenseArray, error) {
	if len(d.Data.Shape) != 2 && len(d.Data.Shape) != 3 {
		return nil, fmt.Errorf("raster: data must be 2D or 3D, got %d dimensions", len(d.Data.Shape))
	}
	if err := checkBands(bands, d.BandCount()); err != nil {
		return nil, err
	}
	rows, cols := d.Shape()
	out := sparse.ZerosDense(len(bands), rows, cols)
	plane := rows * cols
	for i, b := range bands {
		var src []float64
		if len(d.Data.Shape) == 2 {
			src = d.Data.Elements
		} else {
			src = d.Data.Elements[(b-1)*plane : b*plane]
		}
		copy(out.Elements[i*plane:(i+1)*plane], src)
	}
	return out, nil
}

func (d *MemDataset) ReadMask(bands []int) (*sparse.DenseArrayInt, error) {
	return validityMask(d, bands)
}

func (d *MemDataset) FullMask() *sparse.DenseArrayInt {
	rows, cols := d.Shape()
	return fullMask(rows, cols)
}

func (d *MemDataset) Close() error { return nil }

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

// Package raster provides read access to gridded raster data: pixel
// values, per-band nodata values, the affine georeferencing transform,
// and the coordinate reference system. The GDALDataset implementation
// reads any GDAL-supported format; MemDataset holds data in memory.
package raster

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// Dataset is a georeferenced grid of one or more bands of pixel data.
// Bands are numbered from 1, following GDAL convention.
type Dataset interface {
	// BandCount returns the number of bands.
	BandCount() int

	// Nodata returns the nodata value of each band, nil where a band
	// has none. The slice has BandCount elements.
	Nodata() []*float64

	// Shape returns the grid dimensions in pixels.
	Shape() (rows, cols int)

	// GeoTransform returns the affine georeferencing coefficients in
	// GDAL order: x origin, pixel width, row rotation, y origin,
	// column rotation, pixel height.
	GeoTransform() [6]float64

	// CRS returns the coordinate reference system identifier: an EPSG
	// code, a PROJ.4 string, or WKT. It is empty when the dataset
	// carries no CRS.
	CRS() string

	// Read returns the pixel values of the given bands as a 3D array
	// indexed [band][row][column], with bands in the requested order.
	Read(bands []int) (*sparse.DenseArray, error)

	// ReadMask returns the validity masks of the given bands ORd
	// together: 255 where any of the bands holds a value other than
	// its recorded nodata value, 0 elsewhere. A band without a
	// recorded nodata value is valid everywhere.
	ReadMask(bands []int) (*sparse.DenseArrayInt, error)

	// FullMask returns a mask marking every pixel of the grid valid.
	FullMask() *sparse.DenseArrayInt

	// Close releases resources held by the dataset.
	Close() error
}

const maskValid = 255

// validityMask implements ReadMask in terms of Read and Nodata.
func validityMask(d Dataset, bands []int) (*sparse.DenseArrayInt, error) {
	if err := checkBands(bands, d.BandCount()); err != nil {
		return nil, err
	}
	rows, cols := d.Shape()
	mask := sparse.ZerosDenseInt(rows, cols)
	nodata := d.Nodata()
	for _, b := range bands {
		nd := nodata[b-1]
		if nd == nil {
			return fullMask(rows, cols), nil
		}
		data, err := d.Read([]int{b})
		if err != nil {
			return nil, err
		}
		for i, v := range data.Elements {
			if mask.Elements[i] == maskValid {
				continue
			}
			if v != *nd && !(math.IsNaN(v) && math.IsNaN(*nd)) {
				mask.Elements[i] = maskValid
			}
		}
	}
	return mask, nil
}

func fullMask(rows, cols int) *sparse.DenseArrayInt {
	mask := sparse.ZerosDenseInt(rows, cols)
	for i := range mask.Elements {
		mask.Elements[i] = maskValid
	}
	return mask
}

// checkBands validates 1-based band numbers against a band count.
func checkBands(bands []int, count int) error {
	for _, b := range bands {
		if b < 1 || b > count {
			return fmt.Errorf("raster: band %d out of range [1, %d]", b, count)
		}
	}
	return nil
}

// AllBands returns the band numbers 1..count.
func AllBands(count int) []int {
	bands := make([]int, count)
	for i := range bands {
		bands[i] = i + 1
	}
	return bands
}

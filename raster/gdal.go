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
	"sync"

	"github.com/airbusgeo/godal"
	"github.com/ctessum/sparse"
)

var registerOnce sync.Once

// GDALDataset reads raster data through GDAL. It is not safe for
// concurrent use.
type GDALDataset struct {
	ds *godal.Dataset
}

var _ Dataset = (*GDALDataset)(nil)

// Open opens a GDAL-supported raster file for reading.
func Open(path string) (*GDALDataset, error) {
	registerOnce.Do(godal.RegisterAll)
	ds, err := godal.Open(path)
	if err != nil {
		return nil, err
	}
	return &GDALDataset{ds: ds}, nil
}

func (d *GDALDataset) BandCount() int { return len(d.ds.Bands()) }

func (d *GDALDataset) Nodata() []*float64 {
	bands := d.ds.Bands()
	nodata := make([]*float64, len(bands))
	for i, b := range bands {
		if v, ok := b.NoData(); ok {
			v := v
			nodata[i] = &v
		}
	}
	return nodata
}

func (d *GDALDataset) Shape() (rows, cols int) {
	s := d.ds.Structure()
	return s.SizeY, s.SizeX
}

func (d *GDALDataset) GeoTransform() [6]float64 {
	gt, err := d.ds.GeoTransform()
	if err != nil {
		// No georeferencing; pixel coordinates pass through.
		return [6]float64{0, 1, 0, 0, 0, 1}
	}
	return gt
}

func (d *GDALDataset) CRS() string { return d.ds.Projection() }

func (d *GDALDataset) Read(bands []int) (*sparse.DenseArray, error) {
	dsBands := d.ds.Bands()
	if err := checkBands(bands, len(dsBands)); err != nil {
		return nil, err
	}
	rows, cols := d.Shape()
	out := sparse.ZerosDense(len(bands), rows, cols)
	plane := rows * cols
	for i, b := range bands {
		buf := out.Elements[i*plane : (i+1)*plane]
		if err := dsBands[b-1].Read(0, 0, buf, cols, rows); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *GDALDataset) ReadMask(bands []int) (*sparse.DenseArrayInt, error) {
	return validityMask(d, bands)
}

func (d *GDALDataset) FullMask() *sparse.DenseArrayInt {
	rows, cols := d.Shape()
	return fullMask(rows, cols)
}

func (d *GDALDataset) Close() error { return d.ds.Close() }

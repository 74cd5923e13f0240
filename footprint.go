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
	"github.com/ctessum/sparse"

	"github.com/pjhartzell/raster-footprint/crs"
	"github.com/pjhartzell/raster-footprint/raster"
)

// Options controls footprint creation. The zero value reprojects to
// nothing and rounds to zero decimal places; use DefaultOptions for
// the standard WGS84 output.
type Options struct {
	// DestinationCRS is the CRS of the output footprint. Empty means
	// crs.DefaultDestination (geographic WGS84).
	DestinationCRS string

	// Precision is the number of decimal places kept in footprint
	// coordinates.
	Precision int

	// DensifyFactor multiplies the vertex count of every polygon edge
	// before reprojection. Mutually exclusive with DensifyDistance;
	// zero disables.
	DensifyFactor int

	// DensifyDistance is the vertex spacing, in source CRS units, to
	// add along polygon edges before reprojection. Mutually exclusive
	// with DensifyFactor; zero disables.
	DensifyDistance float64

	// SimplifyTolerance is the maximum distance, in destination CRS
	// units, between the original vertices and the simplified
	// footprint. Nil disables simplification.
	SimplifyTolerance *float64

	// ConvexHull replaces the footprint with its convex hull.
	ConvexHull bool

	// Holes keeps interior rings in the footprint. Without it,
	// regions separated only by holes are merged. No effect when
	// ConvexHull is set.
	Holes bool

	// Bands selects the dataset bands contributing to the footprint.
	// Nil means band 1. An explicitly empty slice means all bands,
	// ORd together: a pixel is outside the footprint only if every
	// band holds nodata there.
	Bands []int

	// Nodata overrides the nodata value recorded in the dataset. It
	// may only be used when every band of the dataset records the
	// same nodata value.
	Nodata *float64

	// WithNodata computes the footprint of the entire raster grid,
	// nodata pixels included.
	WithNodata bool
}

// DefaultOptions returns Options producing a WGS84 footprint with
// DefaultPrecision decimal places, no densification, no
// simplification, and no holes.
func DefaultOptions() *Options {
	return &Options{
		DestinationCRS: crs.DefaultDestination,
		Precision:      DefaultPrecision,
	}
}

// FootprintFromMask creates a GeoJSON footprint surrounding the valid
// regions of a validity mask. The mask is traced into polygons,
// optionally densified, reprojected from sourceCRS to the destination
// CRS with precision rounding, and optionally simplified. A mask with
// no valid pixels yields a nil Geometry and a nil error.
func FootprintFromMask(mask *sparse.DenseArrayInt, transform Affine, sourceCRS string, opts *Options) (*Geometry, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	extent := MaskGeometry(mask, transform, opts.ConvexHull, opts.Holes)
	if extent == nil {
		return nil, nil
	}
	extent, err := Densify(extent, opts.DensifyFactor, opts.DensifyDistance)
	if err != nil {
		return nil, err
	}
	src, err := crs.Parse(sourceCRS)
	if err != nil {
		return nil, err
	}
	destCRS := opts.DestinationCRS
	if destCRS == "" {
		destCRS = crs.DefaultDestination
	}
	dst, err := crs.Parse(destCRS)
	if err != nil {
		return nil, err
	}
	extent, err = Reproject(extent, src, dst, opts.Precision)
	if err != nil {
		return nil, err
	}
	extent = Simplify(extent, opts.SimplifyTolerance)
	return NewGeometry(extent), nil
}

// FootprintFromData creates a GeoJSON footprint from a 2D or 3D
// (band, row, column) array of pixel values. Pixels equal to
// opts.Nodata are outside the footprint; with a nil Nodata the
// footprint covers the whole grid. The Bands and WithNodata options
// have no effect here: the array is used as given.
func FootprintFromData(data *sparse.DenseArray, transform Affine, sourceCRS string, opts *Options) (*Geometry, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	mask, err := CreateMask(data, opts.Nodata)
	if err != nil {
		return nil, err
	}
	return FootprintFromMask(mask, transform, sourceCRS, opts)
}

// FootprintFromDataset creates a GeoJSON footprint from an open raster
// dataset. The validity mask is built from the bands selected by
// opts.Bands and the dataset's recorded nodata values, unless
// opts.Nodata overrides them or opts.WithNodata requests the entire
// grid. The dataset's georeferencing transform and CRS locate the
// footprint.
func FootprintFromDataset(d raster.Dataset, opts *Options) (*Geometry, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	count := d.BandCount()
	if count == 0 {
		return nil, invalidArgumentf("raster footprint cannot be computed for a raster with no bands")
	}
	nodata := d.Nodata()
	if opts.Nodata != nil && !uniformNodata(nodata) {
		return nil, invalidArgumentf("when overriding the nodata value, all raster bands must share the same recorded nodata value")
	}

	bands := opts.Bands
	switch {
	case bands == nil:
		bands = []int{1}
	case len(bands) == 0:
		bands = raster.AllBands(count)
	}

	mask, err := datasetMask(d, bands, nodata, opts)
	if err != nil {
		return nil, err
	}
	transform := AffineFromGeoTransform(d.GeoTransform())
	return FootprintFromMask(mask, transform, d.CRS(), opts)
}

// FootprintFromFile creates a GeoJSON footprint from a raster file in
// any GDAL-supported format.
func FootprintFromFile(path string, opts *Options) (*Geometry, error) {
	d, err := raster.Open(path)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return FootprintFromDataset(d, opts)
}

// datasetMask builds the validity mask for the selected bands. The
// override nodata value is only consulted when it differs from the
// dataset's own; otherwise the dataset's per-band validity masks are
// ORd together.
func datasetMask(d raster.Dataset, bands []int, nodata []*float64, opts *Options) (*sparse.DenseArrayInt, error) {
	if opts.WithNodata {
		return d.FullMask(), nil
	}
	if opts.Nodata != nil && (nodata[0] == nil || *nodata[0] != *opts.Nodata) {
		data, err := d.Read(bands)
		if err != nil {
			return nil, err
		}
		return CreateMask(data, opts.Nodata)
	}
	return d.ReadMask(bands)
}

// uniformNodata reports whether every band records the same nodata
// value (or every band records none).
func uniformNodata(nodata []*float64) bool {
	for _, n := range nodata[1:] {
		switch {
		case (n == nil) != (nodata[0] == nil):
			return false
		case n != nil && *n != *nodata[0]:
			return false
		}
	}
	return true
}

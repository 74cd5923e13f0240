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

// Package rasterfootprint converts the valid-data region of a raster
// image into a simplified vector polygon suitable for use as a spatial
// index geometry, for example the geometry of a catalog item.
//
// The pipeline extracts a polygon or multipolygon surrounding
// valid-data pixels from a raster mask, densifies the polygon
// boundaries with additional vertices, reprojects the vertices to a
// destination coordinate reference system, and simplifies the result
// by reducing the number of vertices within an error tolerance.
// Densification happens before reprojection so that a footprint with
// widely spaced vertices does not cut across the true, curved data
// boundary under a non-uniform projection.
//
// All operations are pure functions over immutable inputs: every
// transform returns a new geometry and never mutates its argument.
package rasterfootprint

// Version gives the version of this library.
const Version = "0.2.0"

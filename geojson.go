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
	"encoding/json"

	"github.com/ctessum/geom"
)

// Geometry is a GeoJSON geometry mapping with a Type of "Polygon" or
// "MultiPolygon" and nested Coordinates arrays of [x, y] pairs.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

func ringCoordinates(ring []geom.Point) [][]float64 {
	coords := make([][]float64, len(ring))
	for i, p := range ring {
		coords[i] = []float64{p.X, p.Y}
	}
	return coords
}

func polygonCoordinates(p geom.Polygon) [][][]float64 {
	coords := make([][][]float64, len(p))
	for i, r := range p {
		coords[i] = ringCoordinates(r)
	}
	return coords
}

// NewGeometry converts a polygon or multipolygon to its GeoJSON
// mapping.
func NewGeometry(g geom.Polygonal) *Geometry {
	switch g := g.(type) {
	case geom.MultiPolygon:
		coords := make([][][][]float64, len(g))
		for i, p := range g {
			coords[i] = polygonCoordinates(p)
		}
		return &Geometry{Type: "MultiPolygon", Coordinates: coords}
	default:
		var p geom.Polygon
		if g != nil {
			p = g.Polygons()[0]
		}
		return &Geometry{Type: "Polygon", Coordinates: polygonCoordinates(p)}
	}
}

func decodePosition(v interface{}) (geom.Point, error) {
	pair, ok := v.([]interface{})
	if !ok || len(pair) < 2 {
		return geom.Point{}, invalidArgumentf("geometry coordinates must be [x, y] arrays")
	}
	x, xok := pair[0].(float64)
	y, yok := pair[1].(float64)
	if !xok || !yok {
		return geom.Point{}, invalidArgumentf("geometry coordinates must be numeric")
	}
	return geom.Point{X: x, Y: y}, nil
}

func decodeRing(v interface{}) ([]geom.Point, error) {
	positions, ok := v.([]interface{})
	if !ok {
		return nil, invalidArgumentf("geometry ring must be an array of positions")
	}
	ring := make([]geom.Point, len(positions))
	for i, pos := range positions {
		p, err := decodePosition(pos)
		if err != nil {
			return nil, err
		}
		ring[i] = p
	}
	return ring, nil
}

func decodePolygon(v interface{}) (geom.Polygon, error) {
	rings, ok := v.([]interface{})
	if !ok {
		return nil, invalidArgumentf("polygon coordinates must be an array of rings")
	}
	p := make(geom.Polygon, len(rings))
	for i, r := range rings {
		ring, err := decodeRing(r)
		if err != nil {
			return nil, err
		}
		p[i] = ring
	}
	return p, nil
}

// Polygonal converts the GeoJSON mapping back to a geometry value. A
// Type other than "Polygon" or "MultiPolygon" is an InvalidArgument
// error; this is the only boundary where foreign geometry kinds can
// appear.
func (g *Geometry) Polygonal() (geom.Polygonal, error) {
	switch g.Type {
	case "Polygon":
		return decodePolygon(g.Coordinates)
	case "MultiPolygon":
		polys, ok := g.Coordinates.([]interface{})
		if !ok {
			return nil, invalidArgumentf("multipolygon coordinates must be an array of polygons")
		}
		mp := make(geom.MultiPolygon, len(polys))
		for i, p := range polys {
			poly, err := decodePolygon(p)
			if err != nil {
				return nil, err
			}
			mp[i] = poly
		}
		return mp, nil
	}
	return nil, invalidArgumentf("geometry must be a Polygon or MultiPolygon, got %q", g.Type)
}

// DecodeGeometry parses GeoJSON data into a polygon or multipolygon.
func DecodeGeometry(data []byte) (geom.Polygonal, error) {
	var g Geometry
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return g.Polygonal()
}

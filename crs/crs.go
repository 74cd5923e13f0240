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

// Package crs resolves coordinate reference system identifiers to
// spatial references. Identifiers are opaque strings: an EPSG code
// ("EPSG:4326"), a PROJ.4 string ("+proj=..."), or WKT.
package crs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ctessum/geom/proj"
)

// DefaultDestination is the destination CRS used when none is
// requested: geographic WGS84.
const DefaultDestination = "EPSG:4326"

// proj4 definitions for the EPSG codes this package recognizes
// directly. UTM zones are generated, everything else must arrive as a
// PROJ.4 or WKT string.
var epsgDefs = map[int]string{
	4326: "+proj=longlat +datum=WGS84 +no_defs",
	4269: "+proj=longlat +datum=NAD83 +no_defs",
	3857: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +no_defs",
}

func epsgProj4(code int) (string, error) {
	if def, ok := epsgDefs[code]; ok {
		return def, nil
	}
	switch {
	case code >= 32601 && code <= 32660:
		return fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", code-32600), nil
	case code >= 32701 && code <= 32760:
		return fmt.Sprintf("+proj=utm +zone=%d +south +datum=WGS84 +units=m +no_defs", code-32700), nil
	}
	return "", fmt.Errorf("crs: unsupported EPSG code %d", code)
}

// Parse resolves a CRS identifier to a spatial reference.
func Parse(code string) (*proj.SR, error) {
	code = strings.TrimSpace(code)
	if upper := strings.ToUpper(code); strings.HasPrefix(upper, "EPSG:") {
		n, err := strconv.Atoi(strings.TrimPrefix(upper, "EPSG:"))
		if err != nil {
			return nil, fmt.Errorf("crs: malformed EPSG identifier %q", code)
		}
		def, err := epsgProj4(n)
		if err != nil {
			return nil, err
		}
		code = def
	}
	return proj.Parse(code)
}

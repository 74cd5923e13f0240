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

import "fmt"

// InvalidArgumentError reports a caller error: mutually exclusive
// options set together, an unsupported geometry type at an external
// boundary, a raster source with no bands, or a nodata override that
// conflicts with the source metadata. I/O errors from the raster
// reader are returned unchanged and are never of this type.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "raster-footprint: " + e.Reason
}

func invalidArgumentf(format string, args ...interface{}) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

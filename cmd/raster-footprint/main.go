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

// Command raster-footprint is a command-line interface for creating
// and manipulating raster data footprints.
package main

import (
	"fmt"
	"os"

	"github.com/pjhartzell/raster-footprint/footprintutil"
)

func main() {
	if err := footprintutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
